package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/wordpages/pkg/buildinfo"
	"github.com/matzehuels/wordpages/pkg/errors"
	pkgio "github.com/matzehuels/wordpages/pkg/io"
	"github.com/matzehuels/wordpages/pkg/observability"
	"github.com/matzehuels/wordpages/pkg/pipeline"
	"github.com/matzehuels/wordpages/pkg/table"
)

// RunIDHeader carries the run ID of each request.
const RunIDHeader = "X-Run-ID"

// CacheHeader reports "hit" or "miss" for the stage that produced the body.
const CacheHeader = "X-Cache"

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

var layoutContentTypes = map[pkgio.OutputFormat]string{
	pkgio.OutputJSON: "application/json",
	pkgio.OutputYAML: "application/yaml",
	pkgio.OutputCSV:  "text/csv; charset=utf-8",
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.runID)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// =============================================================================
// Middleware
// =============================================================================

// runID assigns each request a run ID, honoring one sent by the client.
func (s *Server) runID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RunIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RunIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pipeline.WithRunID(r.Context(), id)))
	})
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"run", w.Header().Get(RunIDHeader),
			"duration", d)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// HealthResponse is the response of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	format := pkgio.OutputJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := pkgio.ParseOutputFormat(q)
		if err != nil {
			writeError(w, err)
			return
		}
		format = f
	}

	opts, input, err := s.readRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), input, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pkgio.Write(l, &buf, format); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", layoutContentTypes[format])
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, input, err := s.readRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// readRequest reads and decodes a request body of at most maxBodySize bytes.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, *table.Frame, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, nil, errors.New(errors.ErrCodeInvalidInput,
				"request body exceeds %d bytes", s.maxBodySize)
		}
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request")
	}
	opts, f, err := decodeRequest(body)
	if err != nil {
		return pipeline.Options{}, nil, err
	}
	opts.Logger = s.logger.With("run", w.Header().Get(RunIDHeader))
	return opts, f, nil
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOptions, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidColumn:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError writes err as a JSON error response.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	writeJSON(w, statusFor(code), ErrorResponse{Error: msg, Code: string(code)})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
