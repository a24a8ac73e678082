package catalog

import "github.com/legalaid/caseprogress/internal/domain"

// DefaultWeights is the built-in weight table shared by all categories.
func DefaultWeights() WeightTable {
	return WeightTable{
		domain.ServiceConsultation:        15,
		domain.ServiceDocumentPreparation: 20,
		domain.ServiceCourtAppearance:     25,
		domain.ServiceResearch:            10,
		domain.ServiceCommunityOutreach:   5,
		domain.ServiceMediation:           20,
		domain.ServiceClientMeeting:       10,
		domain.ServiceCaseReview:          15,
	}
}

// DefaultEntries is the built-in per-category rule table.
func DefaultEntries() map[domain.CaseCategory]Entry {
	return map[domain.CaseCategory]Entry{
		domain.CategoryFamily: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceDocumentPreparation, domain.ServiceMediation},
			Optional: []domain.ServiceType{domain.ServiceClientMeeting, domain.ServiceResearch, domain.ServiceCaseReview},
		},
		domain.CategoryCriminal: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceResearch, domain.ServiceCourtAppearance},
			Optional: []domain.ServiceType{domain.ServiceDocumentPreparation, domain.ServiceClientMeeting, domain.ServiceCaseReview},
		},
		domain.CategoryCivil: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceDocumentPreparation, domain.ServiceCourtAppearance},
			Optional: []domain.ServiceType{domain.ServiceResearch, domain.ServiceMediation, domain.ServiceClientMeeting},
		},
		domain.CategoryProperty: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceResearch, domain.ServiceDocumentPreparation},
			Optional: []domain.ServiceType{domain.ServiceMediation, domain.ServiceCourtAppearance, domain.ServiceClientMeeting},
		},
		domain.CategoryLabor: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceMediation, domain.ServiceDocumentPreparation},
			Optional: []domain.ServiceType{domain.ServiceCourtAppearance, domain.ServiceResearch, domain.ServiceCommunityOutreach},
		},
		domain.CategoryCommercial: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceDocumentPreparation, domain.ServiceResearch},
			Optional: []domain.ServiceType{domain.ServiceMediation, domain.ServiceCourtAppearance, domain.ServiceCaseReview},
		},
		domain.CategoryAdministrative: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceDocumentPreparation},
			Optional: []domain.ServiceType{domain.ServiceResearch, domain.ServiceClientMeeting, domain.ServiceCaseReview},
		},
		domain.CategoryConstitutional: {
			Required: []domain.ServiceType{domain.ServiceConsultation, domain.ServiceResearch, domain.ServiceDocumentPreparation, domain.ServiceCourtAppearance},
			Optional: []domain.ServiceType{domain.ServiceCommunityOutreach, domain.ServiceCaseReview},
		},
		domain.CategoryOther: {
			Required: []domain.ServiceType{domain.ServiceConsultation},
			Optional: []domain.ServiceType{domain.ServiceDocumentPreparation, domain.ServiceResearch, domain.ServiceClientMeeting, domain.ServiceCaseReview, domain.ServiceCommunityOutreach},
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultEntries(), DefaultWeights())
	if err != nil {
		panic("catalog: built-in table is invalid: " + err.Error())
	}
	return c
}
