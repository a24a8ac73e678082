// Package catalog holds the per-category service rules and the weight table
// the progress engine scores against.
package catalog

import (
	"errors"
	"fmt"

	"github.com/legalaid/caseprogress/internal/domain"
)

// ErrUnknownCategory is returned when a category has no catalog entry.
// Callers should treat it as a configuration bug.
var ErrUnknownCategory = errors.New("unknown case category")

// Entry lists the required and optional service types for one category.
// Order is preserved so results are deterministic.
type Entry struct {
	Required []domain.ServiceType
	Optional []domain.ServiceType
}

// WeightTable maps a service type to its relative contribution to progress.
type WeightTable map[domain.ServiceType]float64

// Class is how a category's catalog entry treats a service type.
type Class int

const (
	ClassOutside Class = iota
	ClassRequired
	ClassOptional
)

// Catalog is immutable once built. Share it by pointer; it is safe for
// concurrent reads.
type Catalog struct {
	entries map[domain.CaseCategory]Entry
	weights WeightTable
}

// New validates and copies the given tables.
func New(entries map[domain.CaseCategory]Entry, weights WeightTable) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[domain.CaseCategory]Entry, len(entries)),
		weights: make(WeightTable, len(weights)),
	}

	for st, w := range weights {
		if !st.Valid() {
			return nil, fmt.Errorf("weight for unknown service type %q", st)
		}
		if w <= 0 {
			return nil, fmt.Errorf("weight for %s must be positive, got %v", st, w)
		}
		c.weights[st] = w
	}

	for cat, e := range entries {
		if !cat.Valid() {
			return nil, fmt.Errorf("entry for unknown category %q", cat)
		}
		seen := make(map[domain.ServiceType]bool)
		for _, list := range [][]domain.ServiceType{e.Required, e.Optional} {
			for _, st := range list {
				if !st.Valid() {
					return nil, fmt.Errorf("category %s: unknown service type %q", cat, st)
				}
				if seen[st] {
					return nil, fmt.Errorf("category %s: service type %s listed twice", cat, st)
				}
				if _, ok := c.weights[st]; !ok {
					return nil, fmt.Errorf("category %s: no weight for %s", cat, st)
				}
				seen[st] = true
			}
		}
		c.entries[cat] = Entry{
			Required: append([]domain.ServiceType(nil), e.Required...),
			Optional: append([]domain.ServiceType(nil), e.Optional...),
		}
	}

	return c, nil
}

// RequiredAndOptional returns a copy of the category's entry.
func (c *Catalog) RequiredAndOptional(category domain.CaseCategory) (Entry, error) {
	e, ok := c.entries[category]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return Entry{
		Required: append([]domain.ServiceType(nil), e.Required...),
		Optional: append([]domain.ServiceType(nil), e.Optional...),
	}, nil
}

// WeightOf returns the weight of a service type, or 0 when it has none.
func (c *Catalog) WeightOf(st domain.ServiceType) float64 {
	return c.weights[st]
}

// Classify reports whether st is required, optional or outside the catalog
// entry of category.
func (c *Catalog) Classify(category domain.CaseCategory, st domain.ServiceType) (Class, error) {
	e, ok := c.entries[category]
	if !ok {
		return ClassOutside, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return e.Classify(st), nil
}

// Categories returns the categories present in the catalog in canonical order.
func (c *Catalog) Categories() []domain.CaseCategory {
	var out []domain.CaseCategory
	for _, cat := range domain.AllCategories {
		if _, ok := c.entries[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// Classify reports whether st is required, optional or outside the entry.
func (e Entry) Classify(st domain.ServiceType) Class {
	for _, r := range e.Required {
		if r == st {
			return ClassRequired
		}
	}
	for _, o := range e.Optional {
		if o == st {
			return ClassOptional
		}
	}
	return ClassOutside
}
