package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/text"
)

func TestConfigFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want ConfigFormat
	}{
		{"wordpages.toml", ConfigTOML},
		{"wordpages.yaml", ConfigYAML},
		{"wordpages.YML", ConfigYAML},
		{"wordpages", ConfigTOML},
	}
	for _, tt := range tests {
		if got := ConfigFormatFor(tt.path); got != tt.want {
			t.Errorf("ConfigFormatFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name   string
		format ConfigFormat
		doc    string
	}{
		{"toml", ConfigTOML, `
lines_per_page = 40
vertical_space = 0
shape = "lines"
formats = ["svg", "png"]
style = "wireframe"
show_text = true
`},
		{"yaml", ConfigYAML, `
lines_per_page: 40
vertical_space: 0
shape: lines
formats: [svg, png]
style: wireframe
show_text: true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := DecodeOptions(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("DecodeOptions: %v", err)
			}
			if opts.LinesPerPage != 40 {
				t.Errorf("LinesPerPage = %d, want 40", opts.LinesPerPage)
			}
			if opts.VerticalSpace != 0 {
				t.Errorf("VerticalSpace = %g, want an explicit 0", opts.VerticalSpace)
			}
			// Keys absent from the file keep their defaults.
			if opts.XSpacePages != 10 || opts.CharacterHeight != 3 || opts.WrapWidth != 80 {
				t.Errorf("defaults lost: xs=%g h=%g wrap=%d", opts.XSpacePages, opts.CharacterHeight, opts.WrapWidth)
			}
			if opts.Shape != text.ShapeLines {
				t.Errorf("Shape = %s, want lines", opts.Shape)
			}
			if !reflect.DeepEqual(opts.Formats, []string{"svg", "png"}) {
				t.Errorf("Formats = %v", opts.Formats)
			}
			if opts.Style != "wireframe" || !opts.ShowText {
				t.Errorf("render options = %q %v", opts.Style, opts.ShowText)
			}
		})
	}
}

func TestDecodeOptionsUnknownKey(t *testing.T) {
	for _, tt := range []struct {
		format ConfigFormat
		doc    string
	}{
		{ConfigTOML, "lines_per_pag = 3\n"},
		{ConfigYAML, "lines_per_pag: 3\n"},
		{ConfigTOML, "lines_per_page = \"many\"\n"},
	} {
		_, err := DecodeOptions(strings.NewReader(tt.doc), tt.format)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s %q: got %v, want INVALID_CONFIG", tt.format, tt.doc, err)
		}
	}
}

func TestDecodeOptionsEmpty(t *testing.T) {
	for _, format := range []ConfigFormat{ConfigTOML, ConfigYAML} {
		opts, err := DecodeOptions(strings.NewReader(""), format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !reflect.DeepEqual(opts, DefaultOptions()) {
			t.Errorf("%s: empty document should give defaults, got %+v", format, opts)
		}
	}
}

func TestWriteOptionsRoundTrip(t *testing.T) {
	want := DefaultOptions()
	want.LinesPerPage = 12
	want.FillByRow = true
	want.Derive = []string{DeriveParity}
	want.Fill = DeriveParity

	for _, format := range []ConfigFormat{ConfigTOML, ConfigYAML} {
		var buf bytes.Buffer
		if err := WriteOptions(&buf, want, format); err != nil {
			t.Fatalf("%s: WriteOptions: %v", format, err)
		}
		got, err := DecodeOptions(&buf, format)
		if err != nil {
			t.Fatalf("%s: DecodeOptions: %v", format, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s round trip:\n got %+v\nwant %+v", format, got, want)
		}
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wordpages.yaml")
	if err := os.WriteFile(path, []byte("lines_per_page: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.LinesPerPage != 7 {
		t.Errorf("LinesPerPage = %d, want 7", opts.LinesPerPage)
	}

	_, err = LoadOptions(filepath.Join(dir, "absent.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("absent file: got %v, want NOT_FOUND", err)
	}
}
