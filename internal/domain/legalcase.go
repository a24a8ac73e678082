package domain

import (
	"fmt"
	"strings"
	"time"
)

type LegalCase struct {
	ID         string
	Title      string
	ClientName string
	Category   CaseCategory
	Status     CaseStatus
	OpenedAt   time.Time
	ClosedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields a case must carry before it is stored.
func (c *LegalCase) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("case title is required")
	}
	if !c.Category.Valid() {
		return fmt.Errorf("unknown case category %q", c.Category)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID for compact output.
func (c *LegalCase) DisplayID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
