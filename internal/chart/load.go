package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a chart document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the document format from a file extension; anything that
// is not .json is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes and fully validates a chart document.
func Parse(data []byte, format Format) (*Chart, error) {
	var c Chart
	switch format {
	case FormatJSON:
		if err := ValidateDocument(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode chart: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: decode chart: %v", ErrInvalid, err)
		}
		normalized, err := json.Marshal(&c)
		if err != nil {
			return nil, fmt.Errorf("encode chart: %w", err)
		}
		if err := ValidateDocument(normalized); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported chart format %q", format)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a chart document from disk.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart file: %w", err)
	}
	c, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}
