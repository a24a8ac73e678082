// Package importer loads a case and its service history from a JSON or YAML
// file, for migrating records kept elsewhere.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a case import file.
type ImportSchema struct {
	Case    CaseImport     `json:"case"    yaml:"case"`
	Records []RecordImport `json:"records" yaml:"records"`
}

// CaseImport defines the case-level fields in the import file.
type CaseImport struct {
	Title      string  `json:"title"                 yaml:"title"`
	ClientName string  `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	Category   string  `json:"category"              yaml:"category"`
	OpenedAt   *string `json:"opened_at,omitempty"   yaml:"opened_at,omitempty"`
}

// RecordImport defines one service record. DependsOn lists refs of other
// records in the same file.
type RecordImport struct {
	Ref         string   `json:"ref"                  yaml:"ref"`
	ServiceType string   `json:"service_type"         yaml:"service_type"`
	Status      string   `json:"status,omitempty"     yaml:"status,omitempty"`
	Start       string   `json:"start"                yaml:"start"`
	End         *string  `json:"end,omitempty"        yaml:"end,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Notes       string   `json:"notes,omitempty"      yaml:"notes,omitempty"`
}

// LoadImportSchema reads an import file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
