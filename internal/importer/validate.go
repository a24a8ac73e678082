package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
)

// parseTime reads an import time. Values without a zone are UTC.
func parseTime(s string) (time.Time, error) {
	t, err := domain.ParseTime(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateCase(&schema.Case)...)

	refs := make(map[string]bool, len(schema.Records))
	for _, r := range schema.Records {
		if r.Ref != "" {
			refs[r.Ref] = true
		}
	}
	errs = append(errs, validateRecords(schema.Records, refs)...)

	if len(errs) == 0 {
		errs = append(errs, detectCycles(schema.Records)...)
	}

	return errs
}

func validateCase(c *CaseImport) []error {
	var errs []error

	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, fmt.Errorf("case.title is required"))
	}
	if c.Category == "" {
		errs = append(errs, fmt.Errorf("case.category is required"))
	} else if _, ok := domain.ParseCaseCategory(c.Category); !ok {
		errs = append(errs, fmt.Errorf("case.category: invalid value %q", c.Category))
	}
	if c.OpenedAt != nil {
		if _, err := parseTime(*c.OpenedAt); err != nil {
			errs = append(errs, fmt.Errorf("case.opened_at: %w", err))
		}
	}

	return errs
}

func validateRecords(records []RecordImport, refs map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		prefix := fmt.Sprintf("records[%d]", i)

		if r.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if seen[r.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, r.Ref))
		} else {
			seen[r.Ref] = true
		}

		if r.ServiceType == "" {
			errs = append(errs, fmt.Errorf("%s.service_type is required", prefix))
		} else if _, ok := domain.ParseServiceType(r.ServiceType); !ok {
			errs = append(errs, fmt.Errorf("%s.service_type: invalid value %q", prefix, r.ServiceType))
		}

		if r.Status != "" && !domain.ValidRecordStatuses[domain.RecordStatus(r.Status)] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, r.Status))
		}

		var start time.Time
		if r.Start == "" {
			errs = append(errs, fmt.Errorf("%s.start is required", prefix))
		} else if t, err := parseTime(r.Start); err != nil {
			errs = append(errs, fmt.Errorf("%s.start: %w", prefix, err))
		} else {
			start = t
		}
		if r.End != nil {
			end, err := parseTime(*r.End)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.end: %w", prefix, err))
			} else if !start.IsZero() && end.Before(start) {
				errs = append(errs, fmt.Errorf("%s.end %q is before start %q", prefix, *r.End, r.Start))
			}
		}

		for _, dep := range r.DependsOn {
			switch {
			case dep == r.Ref:
				errs = append(errs, fmt.Errorf("%s.depends_on: record cannot depend on itself", prefix))
			case !refs[dep]:
				errs = append(errs, fmt.Errorf("%s.depends_on: ref %q not found in records", prefix, dep))
			}
		}
	}

	return errs
}

// detectCycles reports the first dependency cycle it finds, walking records in
// file order so the message is stable.
func detectCycles(records []RecordImport) []error {
	graph := make(map[string][]string, len(records))
	for _, r := range records {
		graph[r.Ref] = r.DependsOn
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int, len(records))
	var errs []error

	var visit func(ref string) bool
	visit = func(ref string) bool {
		color[ref] = gray
		for _, dep := range graph[ref] {
			if color[dep] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", ref, dep))
				return true
			}
			if color[dep] == white && visit(dep) {
				return true
			}
		}
		color[ref] = black
		return false
	}

	for _, r := range records {
		if color[r.Ref] == white && visit(r.Ref) {
			break
		}
	}

	return errs
}
