package server

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/pipeline"
	"github.com/matzehuels/wordpages/pkg/table"
)

//go:embed request.schema.json
var requestSchemaJSON []byte

var (
	requestSchemaOnce sync.Once
	requestSchema     *jsonschema.Schema
	requestSchemaErr  error
)

// compiledRequestSchema compiles the embedded request schema once.
func compiledRequestSchema() (*jsonschema.Schema, error) {
	requestSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("request.schema.json", bytes.NewReader(requestSchemaJSON)); err != nil {
			requestSchemaErr = fmt.Errorf("load request schema: %w", err)
			return
		}
		requestSchema, requestSchemaErr = compiler.Compile("request.schema.json")
	})
	return requestSchema, requestSchemaErr
}

// Request is the body of the layout and render endpoints.
type Request struct {
	// Records are the input texts; null entries are missing.
	Records []*string `json:"records"`
	// Columns are extra per-record columns, used with the carry option.
	Columns map[string][]*string `json:"columns,omitempty"`
	// Options override the pipeline defaults.
	Options json.RawMessage `json:"options,omitempty"`
}

// decodeRequest validates body against the request schema and decodes it.
func decodeRequest(body []byte) (pipeline.Options, *table.Frame, error) {
	schema, err := compiledRequestSchema()
	if err != nil {
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInternal, err, "request schema")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if err := schema.Validate(doc); err != nil {
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request does not match schema")
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}

	opts := pipeline.DefaultOptions()
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
		}
	}

	f := table.FromNullable(table.TextColumn, req.Records)
	names := make([]string, 0, len(req.Columns))
	for name := range req.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		col := table.FromNullable(name, req.Columns[name]).Columns()[0]
		if err := f.AddColumn(col); err != nil {
			return pipeline.Options{}, nil, err
		}
	}
	return opts, f, nil
}
