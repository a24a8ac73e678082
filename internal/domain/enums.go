package domain

import "strings"

type CaseCategory string

const (
	CategoryFamily         CaseCategory = "FAMILY"
	CategoryCriminal       CaseCategory = "CRIMINAL"
	CategoryCivil          CaseCategory = "CIVIL"
	CategoryProperty       CaseCategory = "PROPERTY"
	CategoryLabor          CaseCategory = "LABOR"
	CategoryCommercial     CaseCategory = "COMMERCIAL"
	CategoryAdministrative CaseCategory = "ADMINISTRATIVE"
	CategoryConstitutional CaseCategory = "CONSTITUTIONAL"
	CategoryOther          CaseCategory = "OTHER"
)

// AllCategories lists every case category in canonical order.
var AllCategories = []CaseCategory{
	CategoryFamily,
	CategoryCriminal,
	CategoryCivil,
	CategoryProperty,
	CategoryLabor,
	CategoryCommercial,
	CategoryAdministrative,
	CategoryConstitutional,
	CategoryOther,
}

func (c CaseCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCaseCategory accepts any casing ("family", "Family") and returns the
// canonical category.
func ParseCaseCategory(s string) (CaseCategory, bool) {
	c := CaseCategory(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

type ServiceType string

const (
	ServiceConsultation        ServiceType = "CONSULTATION"
	ServiceDocumentPreparation ServiceType = "DOCUMENT_PREPARATION"
	ServiceCourtAppearance     ServiceType = "COURT_APPEARANCE"
	ServiceResearch            ServiceType = "RESEARCH"
	ServiceCommunityOutreach   ServiceType = "COMMUNITY_OUTREACH"
	ServiceMediation           ServiceType = "MEDIATION"
	ServiceClientMeeting       ServiceType = "CLIENT_MEETING"
	ServiceCaseReview          ServiceType = "CASE_REVIEW"
)

// AllServiceTypes lists every service type in canonical order.
var AllServiceTypes = []ServiceType{
	ServiceConsultation,
	ServiceDocumentPreparation,
	ServiceCourtAppearance,
	ServiceResearch,
	ServiceCommunityOutreach,
	ServiceMediation,
	ServiceClientMeeting,
	ServiceCaseReview,
}

func (s ServiceType) Valid() bool {
	for _, known := range AllServiceTypes {
		if s == known {
			return true
		}
	}
	return false
}

// ParseServiceType accepts any casing and dashes or spaces in place of
// underscores ("document-preparation").
func ParseServiceType(s string) (ServiceType, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	st := ServiceType(norm)
	return st, st.Valid()
}

// Label returns a human-readable name, e.g. "Document Preparation".
func (s ServiceType) Label() string {
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type RecordStatus string

const (
	RecordPending    RecordStatus = "pending"
	RecordInProgress RecordStatus = "in_progress"
	RecordCompleted  RecordStatus = "completed"
	RecordCancelled  RecordStatus = "cancelled"
)

// ValidRecordStatuses is the canonical set of accepted record status strings.
var ValidRecordStatuses = map[RecordStatus]bool{
	RecordPending:    true,
	RecordInProgress: true,
	RecordCompleted:  true,
	RecordCancelled:  true,
}

type CaseStatus string

const (
	CaseOpen   CaseStatus = "open"
	CaseClosed CaseStatus = "closed"
)
