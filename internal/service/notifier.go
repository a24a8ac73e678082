package service

import (
	"context"
	"log/slog"

	"github.com/legalaid/caseprogress/internal/app"
)

// LogReviewNotifier records the review trigger in the log. It does not
// deliver anything.
type LogReviewNotifier struct {
	Logger *slog.Logger
}

func NewLogReviewNotifier(logger *slog.Logger) *LogReviewNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReviewNotifier{Logger: logger}
}

func (n *LogReviewNotifier) CaseReadyForReview(ctx context.Context, view *app.CaseProgressView) error {
	n.Logger.InfoContext(ctx, "case ready for review",
		"case_id", view.CaseID,
		"category", string(view.Category),
		"total_progress", view.Progress.TotalProgress,
	)
	return nil
}
