package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"rec"},
		Short:   "Log and manage service records",
	}

	cmd.AddCommand(
		newRecordLogCmd(app),
		newRecordCompleteCmd(app),
		newRecordCancelCmd(app),
		newRecordListCmd(app),
		newRecordRemoveCmd(app),
	)

	return cmd
}

func newRecordLogCmd(app *App) *cobra.Command {
	var caseRef, start, end, notes string
	var dependsOn []string
	var serviceType serviceTypeFlag
	var status recordStatusFlag

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a service delivered on a case",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if caseRef == "" {
				return fmt.Errorf("--case is required")
			}
			c, err := app.resolveCase(ctx, caseRef)
			if err != nil {
				return err
			}

			if serviceType.value == "" && app.interactive() {
				serviceType.value = domain.ServiceConsultation
				if status.value == "" {
					status.value = domain.RecordCompleted
				}
				if err := recordForm(&serviceType.value, &status.value, &start, &end, &notes).Run(); err != nil {
					return err
				}
			}
			if serviceType.value == "" {
				return fmt.Errorf("--type is required")
			}

			r := &domain.ServiceRecord{
				CaseID:      c.ID,
				ServiceType: serviceType.value,
				Status:      status.value,
				DependsOn:   dependsOn,
				Notes:       strings.TrimSpace(notes),
			}
			if start != "" {
				if r.StartTime, err = parseTimeFlag("start", start); err != nil {
					return err
				}
			}
			if end != "" {
				at, err := parseTimeFlag("end", end)
				if err != nil {
					return err
				}
				r.EndTime = &at
			}

			if err := app.Records.LogRecord(ctx, r); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s) on %s [%s]: %s\n",
				r.ServiceType.Label(), r.Status, c.Title, c.DisplayID(), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&caseRef, "case", "", "Case ID or unique prefix")
	cmd.Flags().Var(&serviceType, "type", "Service type, e.g. consultation or document-preparation")
	cmd.Flags().Var(&status, "status", "Record status (default completed when --end is set, else in_progress)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (default now)")
	cmd.Flags().StringVar(&end, "end", "", "End time")
	cmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "IDs of records this one follows")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	return cmd
}

func newRecordCompleteCmd(app *App) *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "complete RECORD",
		Short: "Mark a record completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at time.Time
			if end != "" {
				var err error
				if at, err = parseTimeFlag("end", end); err != nil {
					return err
				}
			} else {
				r, err := app.Records.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				// Booked work completed early still ends no sooner than it started.
				at = time.Now()
				if at.Before(r.StartTime) {
					at = r.StartTime
				}
			}
			r, err := app.Records.Complete(cmd.Context(), args[0], at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s %s\n", r.ServiceType.Label(), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "End time (default now, or the record's start if that is later)")

	return cmd
}

func newRecordCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel RECORD",
		Short: "Cancel a record that has not been completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Records.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled record %s\n", args[0])
			return nil
		},
	}
}

func newRecordListCmd(app *App) *cobra.Command {
	var caseRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the service records of a case",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.resolveCase(ctx, caseRef)
			if err != nil {
				return err
			}
			records, err := app.Records.ListByCase(ctx, c.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordList(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&caseRef, "case", "", "Case ID or unique prefix")
	_ = cmd.MarkFlagRequired("case")

	return cmd
}

func newRecordRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm RECORD",
		Short: "Delete a service record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Records.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", args[0])
			return nil
		},
	}
}
