package app

import (
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/progress"
	"github.com/legalaid/caseprogress/internal/timeline"
)

type ProgressRequest struct {
	CaseID string
	Now    *time.Time
}

func NewProgressRequest(caseID string) ProgressRequest {
	return ProgressRequest{CaseID: caseID}
}

type CaseProgressView struct {
	CaseID         string                `json:"caseId"`
	CaseTitle      string                `json:"caseTitle"`
	ClientName     string                `json:"clientName,omitempty"`
	Category       domain.CaseCategory   `json:"category"`
	CaseStatus     domain.CaseStatus     `json:"caseStatus"`
	GeneratedAt    time.Time             `json:"generatedAt"`
	RecordCount    int                   `json:"recordCount"`
	Progress       progress.Result       `json:"progress"`
	Services       []ServiceLine         `json:"services"`
	Timeline       timeline.Traffic      `json:"timeline"`
	Skipped        []domain.ServiceType  `json:"skipped"`
	Diagnostics    []progress.Diagnostic `json:"diagnostics"`
	ReadyForReview bool                  `json:"readyForReview"`
}

type ProgressErrorCode string

const (
	ProgressErrInvalidCaseID   ProgressErrorCode = "INVALID_CASE_ID"
	ProgressErrCaseNotFound    ProgressErrorCode = "CASE_NOT_FOUND"
	ProgressErrUnknownCategory ProgressErrorCode = "UNKNOWN_CATEGORY"
)

type ProgressError struct {
	Code    ProgressErrorCode
	Message string
}

func (e *ProgressError) Error() string {
	return string(e.Code) + ": " + e.Message
}
