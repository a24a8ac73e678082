package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/legalaid/caseprogress/internal/domain"
)

// fileSchema is the on-disk YAML shape of a catalog override:
//
//	weights:
//	  CONSULTATION: 15
//	categories:
//	  FAMILY:
//	    required: [CONSULTATION, DOCUMENT_PREPARATION, MEDIATION]
//	    optional: [CLIENT_MEETING]
//
// Weights not listed keep their built-in value. Categories listed replace the
// built-in entry; categories not listed keep it.
type fileSchema struct {
	Weights    map[string]float64        `yaml:"weights"`
	Categories map[string]categorySchema `yaml:"categories"`
}

type categorySchema struct {
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
}

// Load reads a YAML catalog override and merges it over the built-in tables.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML bytes merged over the built-in tables.
func Parse(data []byte) (*Catalog, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	weights := DefaultWeights()
	for name, w := range fs.Weights {
		st, ok := domain.ParseServiceType(name)
		if !ok {
			return nil, fmt.Errorf("weights: unknown service type %q", name)
		}
		weights[st] = w
	}

	entries := DefaultEntries()
	for name, cs := range fs.Categories {
		cat, ok := domain.ParseCaseCategory(name)
		if !ok {
			return nil, fmt.Errorf("categories: unknown category %q", name)
		}
		req, err := parseServiceTypes(cs.Required)
		if err != nil {
			return nil, fmt.Errorf("categories.%s.required: %w", cat, err)
		}
		opt, err := parseServiceTypes(cs.Optional)
		if err != nil {
			return nil, fmt.Errorf("categories.%s.optional: %w", cat, err)
		}
		entries[cat] = Entry{Required: req, Optional: opt}
	}

	return New(entries, weights)
}

func parseServiceTypes(names []string) ([]domain.ServiceType, error) {
	out := make([]domain.ServiceType, 0, len(names))
	for _, n := range names {
		st, ok := domain.ParseServiceType(n)
		if !ok {
			return nil, fmt.Errorf("unknown service type %q", n)
		}
		out = append(out, st)
	}
	return out, nil
}
