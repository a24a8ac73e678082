package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/repository"
)

// UseCaseEvent describes one finished service call, such as log-record or
// case-progress.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver reports use cases through logger. Calls rejected
// because of caller input log at WARN; any other failure logs at ERROR.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}

	switch {
	case event.Err == nil:
		o.logger.InfoContext(ctx, "service_use_case", attrs...)
	case isRejection(event.Err):
		o.logger.WarnContext(ctx, "service_use_case", append(attrs, "error", event.Err.Error())...)
	default:
		o.logger.ErrorContext(ctx, "service_use_case", append(attrs, "error", event.Err.Error())...)
	}
}

// isRejection reports errors caused by the request rather than the store.
func isRejection(err error) bool {
	var pe *app.ProgressError
	if errors.As(err, &pe) {
		return true
	}
	for _, target := range []error{
		repository.ErrNotFound,
		catalog.ErrUnknownCategory,
		ErrCaseClosed,
		ErrAmbiguousCaseRef,
		ErrInvalidRecord,
		ErrForeignDependency,
		ErrInvalidTransition,
		ErrInvalidImport,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func observeUseCase(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
