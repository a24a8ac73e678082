package formatter

import (
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
)

// FormatCaseList renders cases as a table.
func FormatCaseList(cases []*domain.LegalCase, now time.Time) string {
	if len(cases) == 0 {
		return Dim("No cases found.") + "\n"
	}
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		client := c.ClientName
		if client == "" {
			client = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Title),
			client,
			CategoryBadge(c.Category),
			CaseStatusPill(c.Status),
			CaseAge(c.OpenedAt, now),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "CLIENT", "CATEGORY", "STATUS", "OPENED"}, rows)
}

// FormatCaseDetail renders a case header followed by its service log.
func FormatCaseDetail(c *domain.LegalCase, records []domain.ServiceRecord) string {
	var b strings.Builder
	b.WriteString(Header(c.Title) + "\n")
	b.WriteString(Dim("ID        ") + c.ID + "\n")
	if c.ClientName != "" {
		b.WriteString(Dim("Client    ") + c.ClientName + "\n")
	}
	b.WriteString(Dim("Category  ") + CategoryBadge(c.Category) + "\n")
	b.WriteString(Dim("Status    ") + CaseStatusPill(c.Status) + "\n")
	b.WriteString(Dim("Opened    ") + ShortDate(c.OpenedAt) + "\n")
	if c.ClosedAt != nil {
		b.WriteString(Dim("Closed    ") + ShortDate(*c.ClosedAt) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(FormatRecordList(records))
	return b.String()
}

// FormatRecordList renders service records as a table.
func FormatRecordList(records []domain.ServiceRecord) string {
	if len(records) == 0 {
		return Dim("No service records logged.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		duration := Dim("--")
		if r.EndTime != nil {
			duration = FormatDuration(r.EndTime.Sub(r.StartTime))
		}
		deps := Dim("--")
		if len(r.DependsOn) > 0 {
			deps = strings.Join(r.DependsOn, ", ")
		}
		rows = append(rows, []string{
			r.ID,
			r.ServiceType.Label(),
			RecordStatusPill(r.Status),
			r.StartTime.Format("2006-01-02 15:04"),
			duration,
			deps,
		})
	}
	return RenderTable([]string{"ID", "SERVICE", "STATUS", "START", "DURATION", "AFTER"}, rows)
}
