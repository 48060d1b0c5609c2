package configfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

// Format is the on-disk encoding of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor selects the format from the file extension:
// .yaml and .yml are YAML, anything else is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Label returns the human name used in error messages.
func (f Format) Label() string {
	if f == FormatYAML {
		return "YAML"
	}
	return "JSON"
}

// decodeRaw parses data into a generic tree for schema validation
func decodeRaw(data []byte, format Format) (interface{}, error) {
	var raw interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("YAML file appears to be empty or invalid")
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// decodeTyped parses data into the typed configuration
func decodeTyped(data []byte, format Format, cfg *domain.Config) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

// Encode serializes cfg: YAML with 2-space indentation and no line
// wrapping, or JSON pretty-printed with 2-space indentation.
func Encode(cfg *domain.Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	normalize(cfg)

	if format == FormatYAML {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// URLs carry '&' in query strings; keep them readable.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes and validates configuration content. It is the pure half
// of Store.Load.
func Parse(data []byte, format Format) (*domain.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.Errorf(domain.KindConfigEmpty, titleConfigError, "Configuration file is empty")
	}

	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigParse, titleConfigError,
			fmt.Sprintf("Failed to parse %s configuration", format.Label()), err)
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := decodeTyped(data, format, &cfg); err != nil {
		return nil, domain.Wrap(domain.KindConfigSchema, titleConfigError,
			"Configuration has fields of the wrong type", err)
	}

	return &cfg, nil
}

// normalize replaces nil slices that the schema requires to be arrays.
func normalize(cfg *domain.Config) {
	if cfg.Groups == nil {
		cfg.Groups = []domain.Group{}
	}
	for i := range cfg.Groups {
		if cfg.Groups[i].Links == nil {
			cfg.Groups[i].Links = []domain.Link{}
		}
	}
}
