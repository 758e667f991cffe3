package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
	"github.com/neuroscanhq/neuroscan/internal/style"
	"github.com/spf13/cobra"
)

func newHistoryCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage prediction history",
	}
	cmd.AddCommand(
		newHistoryListCmd(stdout),
		newHistoryBulkCmd(stdout),
		newHistoryNoteCmd(stdout, stderr),
		newHistoryResetCmd(stdout),
		newHistoryDeleteCmd(stdout),
	)
	return cmd
}

func newHistoryListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List single-prediction history (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := openHistory().LoadSingle()
			if err != nil {
				return err
			}
			renderSingleLog(stdout, log)
			return nil
		},
	}
}

func newHistoryBulkCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk",
		Short: "List bulk-run history (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := openHistory().LoadBulk()
			if err != nil {
				return err
			}
			renderBulkLog(stdout, log)
			return nil
		},
	}
}

func newHistoryNoteCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "note <index> <text>...",
		Short: "Attach a note to a prediction by its list index",
		Long: `Attach a free-text note to an entry of 'nsc history list'.

The index is the position shown in the list, 0 being the newest entry.

Examples:
  nsc history note 0 follow up with radiology`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			svc := openHistory()
			log, err := svc.LoadSingle()
			if err != nil {
				return err
			}
			note := strings.Join(args[1:], " ")
			if err := svc.UpdateNote(log, index, note); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s Note saved on entry %d\n", style.Success.Render(style.IconPass), index)
			return nil
		},
	}
}

func newHistoryResetCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the entire single-prediction history",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := openHistory().ResetSingle(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s Prediction history cleared\n", style.Success.Render(style.IconPass))
			return nil
		},
	}
}

func newHistoryDeleteCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <timestamp>",
		Short: "Delete one bulk run by its timestamp",
		Long: `Delete the bulk run whose timestamp matches exactly.

Timestamps are printed by 'nsc history bulk' in RFC 3339 form and act
as the record's identity. A timestamp that matches nothing leaves the
log unchanged.

Examples:
  nsc history delete 2026-08-24T09:30:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			at, err := time.Parse(time.RFC3339Nano, args[0])
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
			}
			svc := openHistory()
			before, err := svc.LoadBulk()
			if err != nil {
				return err
			}
			after, err := svc.DeleteBulk(at)
			if err != nil {
				return err
			}
			if len(after) == len(before) {
				fmt.Fprintf(stdout, "No bulk run matches %s; nothing deleted\n", args[0])
				return nil
			}
			fmt.Fprintf(stdout, "%s Deleted bulk run %s\n", style.Success.Render(style.IconPass), args[0])
			return nil
		},
	}
}

func renderSingleLog(w io.Writer, log []history.SinglePredictionRecord) {
	if len(log) == 0 {
		fmt.Fprintln(w, "No predictions recorded yet. Run 'nsc predict <image>' first.")
		return
	}
	tbl := style.NewTable(
		style.Column{Name: "#", Width: 2, Align: style.AlignRight},
		style.Column{Name: "When", Width: 16},
		style.Column{Name: "Class", Width: 10},
		style.Column{Name: "Conf", Width: 7, Align: style.AlignRight},
		style.Column{Name: "Image", Width: 28},
		style.Column{Name: "Note", Width: 24},
	)
	for i, rec := range log {
		tbl.AddRow(
			fmt.Sprintf("%d", i),
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Label.DisplayName(),
			fmt.Sprintf("%.1f%%", maxProbability(rec.Probabilities)*100),
			rec.ImageRef,
			rec.Note,
		)
	}
	fmt.Fprint(w, tbl.Render())
}

func renderBulkLog(w io.Writer, log []history.BulkAggregateRecord) {
	if len(log) == 0 {
		fmt.Fprintln(w, "No bulk runs recorded yet. Run 'nsc bulk <path>' first.")
		return
	}
	tbl := style.NewTable(
		style.Column{Name: "Timestamp", Width: 35},
		style.Column{Name: "Model", Width: 16},
		style.Column{Name: "Classified", Width: 10, Align: style.AlignRight},
		style.Column{Name: "Failed", Width: 6, Align: style.AlignRight},
	)
	for _, rec := range log {
		tbl.AddRow(
			rec.CreatedAt.Format(time.RFC3339Nano),
			rec.ModelName,
			fmt.Sprintf("%d", rec.Total()),
			fmt.Sprintf("%d", rec.Failures),
		)
	}
	fmt.Fprint(w, tbl.Render())
}

func maxProbability(probs [classifier.NumClasses]float64) float64 {
	maxP := probs[0]
	for _, p := range probs[1:] {
		if p > maxP {
			maxP = p
		}
	}
	return maxP
}
