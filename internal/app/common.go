package app

import "github.com/legalaid/caseprogress/internal/domain"

// ServiceLine is one catalog row of a case's category with its completion
// state for the case.
type ServiceLine struct {
	ServiceType domain.ServiceType `json:"serviceType"`
	Label       string             `json:"label"`
	Required    bool               `json:"required"`
	Completed   bool               `json:"completed"`
	Weight      float64            `json:"weight"`
}
