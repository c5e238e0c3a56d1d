package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is a schema file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// FormatFromPath picks the schema encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("unsupported schema file extension %q", filepath.Ext(path))
}

// Load reads, normalizes and validates a schema file.
func Load(path string) (*Package, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	pkg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return pkg, nil
}

// Parse decodes a schema in the given encoding, then normalizes and validates it.
func Parse(data []byte, format Format) (*Package, error) {
	var pkg Package
	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&pkg)
	case FormatTOML:
		err = toml.Unmarshal(data, &pkg)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&pkg)
	case FormatXML:
		err = decodeXML(data, &pkg)
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, NewSchemaError("", "", "decode "+string(format), err)
	}
	if err := pkg.Normalize(); err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return &pkg, nil
}
