package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/oklog/ulid/v2"
)

// GeneratedCase is a converted import ready for persistence. Records are
// ordered so that every record follows its dependencies; dependencies point
// at the generated record IDs.
type GeneratedCase struct {
	Case    *domain.LegalCase
	Records []*domain.ServiceRecord
}

// DependencyCount is the number of dependency edges across all records.
func (g *GeneratedCase) DependencyCount() int {
	n := 0
	for _, r := range g.Records {
		n += len(r.DependsOn)
	}
	return n
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedCase, error) {
	now := time.Now().UTC().Truncate(time.Second)

	category, ok := domain.ParseCaseCategory(schema.Case.Category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", schema.Case.Category)
	}
	openedAt := now
	if schema.Case.OpenedAt != nil {
		t, err := parseTime(*schema.Case.OpenedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing opened_at: %w", err)
		}
		openedAt = t
	}

	c := &domain.LegalCase{
		ID:         uuid.New().String(),
		Title:      strings.TrimSpace(schema.Case.Title),
		ClientName: strings.TrimSpace(schema.Case.ClientName),
		Category:   category,
		Status:     domain.CaseOpen,
		OpenedAt:   openedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// IDs are assigned up front so dependencies may point forward in the file.
	entropy := ulid.DefaultEntropy()
	refMap := make(map[string]string, len(schema.Records)) // ref -> record ID
	starts := make([]time.Time, len(schema.Records))
	for i, r := range schema.Records {
		start, err := parseTime(r.Start)
		if err != nil {
			return nil, fmt.Errorf("record %q: parsing start: %w", r.Ref, err)
		}
		starts[i] = start.Truncate(time.Second)
		id, err := ulid.New(idTimestamp(start), entropy)
		if err != nil {
			return nil, fmt.Errorf("record %q: generating id: %w", r.Ref, err)
		}
		refMap[r.Ref] = id.String()
	}

	records := make([]*domain.ServiceRecord, 0, len(schema.Records))
	for _, i := range insertionOrder(schema.Records) {
		r := schema.Records[i]
		st, _ := domain.ParseServiceType(r.ServiceType)
		rec := &domain.ServiceRecord{
			ID:          refMap[r.Ref],
			CaseID:      c.ID,
			ServiceType: st,
			Status:      domain.RecordStatus(r.Status),
			StartTime:   starts[i],
			Notes:       r.Notes,
			CreatedAt:   now,
		}
		if r.End != nil {
			end, err := parseTime(*r.End)
			if err != nil {
				return nil, fmt.Errorf("record %q: parsing end: %w", r.Ref, err)
			}
			end = end.Truncate(time.Second)
			rec.EndTime = &end
		}
		if rec.Status == "" {
			rec.Status = domain.RecordInProgress
			if rec.EndTime != nil {
				rec.Status = domain.RecordCompleted
			}
		}
		for _, dep := range r.DependsOn {
			id, ok := refMap[dep]
			if !ok {
				return nil, fmt.Errorf("record %q: depends_on ref %q not found", r.Ref, dep)
			}
			rec.DependsOn = append(rec.DependsOn, id)
		}
		records = append(records, rec)
	}

	return &GeneratedCase{Case: c, Records: records}, nil
}

// idTimestamp is the ULID time component for a record starting at t. ULIDs
// cannot encode times before the Unix epoch, so older records share time 0
// and keep their real start time on the record itself.
func idTimestamp(t time.Time) uint64 {
	if t.Before(time.Unix(0, 0)) {
		return 0
	}
	return ulid.Timestamp(t)
}

// insertionOrder returns record indices with every record after the records it
// depends on, otherwise keeping file order. The graph must be acyclic.
func insertionOrder(records []RecordImport) []int {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.Ref] = i
	}

	done := make([]bool, len(records))
	order := make([]int, 0, len(records))
	var visit func(i int)
	visit = func(i int) {
		if done[i] {
			return
		}
		done[i] = true
		for _, dep := range records[i].DependsOn {
			if j, ok := index[dep]; ok {
				visit(j)
			}
		}
		order = append(order, i)
	}
	for i := range records {
		visit(i)
	}
	return order
}
