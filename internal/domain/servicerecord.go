package domain

import "time"

// ServiceRecord is one logged unit of legal work on a case.
type ServiceRecord struct {
	ID          string
	CaseID      string
	ServiceType ServiceType
	Status      RecordStatus
	StartTime   time.Time
	EndTime     *time.Time // nil while in progress

	// DependsOn lists record IDs this record logically follows. Empty means
	// no explicit list was given.
	DependsOn []string

	Notes     string
	CreatedAt time.Time
}

// EndsBeforeStart reports an end time earlier than the start time.
func (r *ServiceRecord) EndsBeforeStart() bool {
	return r.EndTime != nil && r.EndTime.Before(r.StartTime)
}

// EffectiveDate is the end time when known, otherwise the start time.
func (r *ServiceRecord) EffectiveDate() time.Time {
	if r.EndTime != nil {
		return *r.EndTime
	}
	return r.StartTime
}
