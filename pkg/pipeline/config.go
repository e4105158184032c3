package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordpages/pkg/errors"
)

// =============================================================================
// Config Files
// =============================================================================

// ConfigFormat is a config file encoding.
type ConfigFormat string

const (
	ConfigTOML ConfigFormat = "toml"
	ConfigYAML ConfigFormat = "yaml"
)

// ConfigFormatFor picks the encoding from a file extension.
// Anything other than .yaml or .yml is read as TOML.
func ConfigFormatFor(path string) ConfigFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ConfigYAML
	}
	return ConfigTOML
}

// LoadOptions reads a config file. Keys absent from the file keep the
// values of [DefaultOptions]; unknown keys are rejected.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	return DecodeOptions(bytes.NewReader(data), ConfigFormatFor(path))
}

// DecodeOptions decodes a config document on top of [DefaultOptions].
func DecodeOptions(r io.Reader, format ConfigFormat) (Options, error) {
	opts := DefaultOptions()
	switch format {
	case ConfigYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && err != io.EOF {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml config")
		}
	case ConfigTOML:
		md, err := toml.NewDecoder(r).Decode(&opts)
		if err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %v", undecoded)
		}
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
	}
	return opts, nil
}

// WriteOptions encodes opts as a config document.
func WriteOptions(w io.Writer, opts Options, format ConfigFormat) error {
	switch format {
	case ConfigYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(opts); err != nil {
			return fmt.Errorf("encode yaml config: %w", err)
		}
		return enc.Close()
	case ConfigTOML:
		if err := toml.NewEncoder(w).Encode(opts); err != nil {
			return fmt.Errorf("encode toml config: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
}
