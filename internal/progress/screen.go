package progress

import (
	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
)

type DiagnosticReason string

const (
	ReasonUnknownServiceType DiagnosticReason = "UNKNOWN_SERVICE_TYPE"
	ReasonUnknownStatus      DiagnosticReason = "UNKNOWN_STATUS"
	ReasonEndBeforeStart     DiagnosticReason = "END_BEFORE_START"
	ReasonOutsideCatalog     DiagnosticReason = "OUTSIDE_CATALOG"
)

// Diagnostic describes a record that was left out of the calculation.
type Diagnostic struct {
	RecordID    string             `json:"recordId"`
	ServiceType domain.ServiceType `json:"serviceType"`
	Reason      DiagnosticReason   `json:"reason"`
}

// Malformed reports whether the diagnostic marks a broken record, as opposed
// to a valid record whose type the category does not use.
func (d Diagnostic) Malformed() bool {
	return d.Reason != ReasonOutsideCatalog
}

// Screening is the result of splitting records into usable and rejected sets.
type Screening struct {
	Valid       []domain.ServiceRecord
	Skipped     []domain.ServiceType
	Diagnostics []Diagnostic
}

// Screen drops malformed records and records whose service type the
// category's entry does not list. Input order is preserved. Malformed
// records add their service type to Skipped; out-of-catalog records only
// produce a diagnostic.
func Screen(entry catalog.Entry, records []domain.ServiceRecord) Screening {
	s := Screening{
		Valid:       make([]domain.ServiceRecord, 0, len(records)),
		Skipped:     []domain.ServiceType{},
		Diagnostics: []Diagnostic{},
	}
	for _, r := range records {
		reason, ok := screenRecord(entry, r)
		if ok {
			s.Valid = append(s.Valid, r)
			continue
		}
		d := Diagnostic{RecordID: r.ID, ServiceType: r.ServiceType, Reason: reason}
		s.Diagnostics = append(s.Diagnostics, d)
		if d.Malformed() {
			s.Skipped = append(s.Skipped, r.ServiceType)
		}
	}
	return s
}

func screenRecord(entry catalog.Entry, r domain.ServiceRecord) (DiagnosticReason, bool) {
	switch {
	case !r.ServiceType.Valid():
		return ReasonUnknownServiceType, false
	case !domain.ValidRecordStatuses[r.Status]:
		return ReasonUnknownStatus, false
	case r.EndsBeforeStart():
		return ReasonEndBeforeStart, false
	case entry.Classify(r.ServiceType) == catalog.ClassOutside:
		return ReasonOutsideCatalog, false
	}
	return "", true
}
