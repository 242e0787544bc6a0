package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a measurement import file.
type ImportSchema struct {
	Study        *StudyImport        `json:"study,omitempty" yaml:"study,omitempty"`
	Measurements []MeasurementImport `json:"measurements" yaml:"measurements"`
}

// StudyImport describes the study to create when the import does not target
// an existing one.
type StudyImport struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MeasurementImport is one row of the file. Either TimeMs holds a single
// trial or TimesMs lists several trials of the same operator/target pair.
type MeasurementImport struct {
	Operator   string    `json:"operator" yaml:"operator"`
	Target     string    `json:"target" yaml:"target"`
	TimeMs     *float64  `json:"time_ms,omitempty" yaml:"time_ms,omitempty"`
	TimesMs    []float64 `json:"times_ms,omitempty" yaml:"times_ms,omitempty"`
	RecordedAt *string   `json:"recorded_at,omitempty" yaml:"recorded_at,omitempty"`
}

// Format is the encoding of an import file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension; anything that is not
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadImportSchema reads and parses a measurement import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatFromPath(path))
}

// ParseImportSchema decodes data in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &schema, nil
}
