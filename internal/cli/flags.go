package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*categoryFlag)(nil)
	_ pflag.Value = (*serviceTypeFlag)(nil)
	_ pflag.Value = (*recordStatusFlag)(nil)
)

// categoryFlag parses a case category in any casing.
type categoryFlag struct {
	value domain.CaseCategory
}

func (f *categoryFlag) String() string { return string(f.value) }
func (f *categoryFlag) Type() string   { return "category" }

func (f *categoryFlag) Set(s string) error {
	c, ok := domain.ParseCaseCategory(s)
	if !ok {
		return fmt.Errorf("unknown category %q (one of %s)", s, joinCategories())
	}
	f.value = c
	return nil
}

type serviceTypeFlag struct {
	value domain.ServiceType
}

func (f *serviceTypeFlag) String() string { return string(f.value) }
func (f *serviceTypeFlag) Type() string   { return "service" }

func (f *serviceTypeFlag) Set(s string) error {
	st, ok := domain.ParseServiceType(s)
	if !ok {
		return fmt.Errorf("unknown service type %q", s)
	}
	f.value = st
	return nil
}

type recordStatusFlag struct {
	value domain.RecordStatus
}

func (f *recordStatusFlag) String() string { return string(f.value) }
func (f *recordStatusFlag) Type() string   { return "status" }

func (f *recordStatusFlag) Set(s string) error {
	st := domain.RecordStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !domain.ValidRecordStatuses[st] {
		return fmt.Errorf("unknown record status %q (pending, in_progress, completed, cancelled)", s)
	}
	f.value = st
	return nil
}

func joinCategories() string {
	names := make([]string, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		names = append(names, strings.ToLower(string(c)))
	}
	return strings.Join(names, ", ")
}

// parseTimeFlag reads a time in local time unless the value carries a zone.
func parseTimeFlag(name, s string) (time.Time, error) {
	t, err := domain.ParseTime(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339", name, strings.TrimSpace(s))
	}
	return t, nil
}

func validateOptionalTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseTimeFlag("time", s)
	return err
}
