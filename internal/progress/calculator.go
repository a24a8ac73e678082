// Package progress computes a case's weighted completion against the
// service catalog.
package progress

import (
	"math"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
)

// Result classifies a case's services and scores its completion.
type Result struct {
	// TotalProgress is round(100 * completed required weight / total required weight).
	TotalProgress             int                  `json:"totalProgress"`
	CompletedServices         []domain.ServiceType `json:"completedServices"`
	RemainingServices         []domain.ServiceType `json:"remainingServices"`
	OptionalServicesCompleted []domain.ServiceType `json:"optionalServicesCompleted"`
}

// Outcome is a Result plus the records the calculation could not use.
type Outcome struct {
	Result      Result
	Skipped     []domain.ServiceType
	Diagnostics []Diagnostic
}

// Calculate scores records against the category's catalog entry. Only
// completed records count; repeated completions of one type count once.
// Malformed records are reported in Skipped and never abort the calculation.
func Calculate(cat *catalog.Catalog, category domain.CaseCategory, records []domain.ServiceRecord) (Outcome, error) {
	entry, err := cat.RequiredAndOptional(category)
	if err != nil {
		return Outcome{}, err
	}

	screening := Screen(entry, records)

	done := make(map[domain.ServiceType]bool)
	for _, r := range screening.Valid {
		if r.Status == domain.RecordCompleted {
			done[r.ServiceType] = true
		}
	}

	res := Result{
		CompletedServices:         []domain.ServiceType{},
		RemainingServices:         []domain.ServiceType{},
		OptionalServicesCompleted: []domain.ServiceType{},
	}

	var requiredWeight, doneWeight float64
	for _, st := range entry.Required {
		w := cat.WeightOf(st)
		requiredWeight += w
		if done[st] {
			doneWeight += w
			res.CompletedServices = append(res.CompletedServices, st)
		} else {
			res.RemainingServices = append(res.RemainingServices, st)
		}
	}
	for _, st := range entry.Optional {
		if done[st] {
			res.CompletedServices = append(res.CompletedServices, st)
			res.OptionalServicesCompleted = append(res.OptionalServicesCompleted, st)
		}
	}

	switch {
	case len(entry.Required) == 0:
		// Nothing mandatory: any recorded optional work counts as done.
		if len(res.OptionalServicesCompleted) > 0 {
			res.TotalProgress = 100
		}
	case requiredWeight > 0:
		res.TotalProgress = WeightedPct(doneWeight, requiredWeight)
	}

	return Outcome{
		Result:      res,
		Skipped:     screening.Skipped,
		Diagnostics: screening.Diagnostics,
	}, nil
}

// WeightedPct returns round(100 * done / total), clamped to 0..100.
// A zero total yields 0.
func WeightedPct(done, total float64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * done / total))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ReadyForReview reports whether every required service has been completed.
func (r Result) ReadyForReview() bool {
	return len(r.RemainingServices) == 0
}
