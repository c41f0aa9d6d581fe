package presentation

import (
	"fmt"
	"io"

	"memorg/internal/domain"
)

// Printer renders run progress and the terminal summary for the plain
// (non-TUI) mode.
type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintEvent(e domain.Event) {
	line := fmt.Sprintf("[%d/%d] %s", e.Processed, e.Total, formatOutcome(e))
	if p.Verbose && e.Source != "" {
		line += fmt.Sprintf(" (date via %s)", e.Source)
	}
	fmt.Fprintln(p.Writer, line)
}

func (p Printer) PrintSummary(s domain.Summary, outputRoot string) {
	fmt.Fprintln(p.Writer)
	if s.WouldCopy > 0 {
		fmt.Fprintf(p.Writer, "Dry run: %d of %d files would be copied into %s.\n", s.WouldCopy, s.Total, outputRoot)
	} else {
		fmt.Fprintf(p.Writer, "Copied %d of %d files into %s.\n", s.Copied, s.Total, outputRoot)
	}
	if s.AlreadyPlaced > 0 {
		fmt.Fprintf(p.Writer, "%d files were already in place.\n", s.AlreadyPlaced)
	}
	if s.MissingSource > 0 {
		fmt.Fprintf(p.Writer, "%d files were missing on disk.\n", s.MissingSource)
	}
	if s.UnparseableDate > 0 {
		fmt.Fprintf(p.Writer, "%d files had no usable date.\n", s.UnparseableDate)
	}
	if s.CopyFailed > 0 {
		fmt.Fprintf(p.Writer, "%d files failed to copy.\n", s.CopyFailed)
	}
	if s.Cancelled > 0 {
		fmt.Fprintf(p.Writer, "Cancelled with %d files left unprocessed.\n", s.Cancelled)
	}
	if len(s.Errors) > 0 {
		fmt.Fprintln(p.Writer, "Errors:")
		for _, msg := range s.Errors {
			fmt.Fprintln(p.Writer, "- "+msg)
		}
	}
}

func formatOutcome(e domain.Event) string {
	switch e.Outcome {
	case domain.OutcomeCopied:
		return fmt.Sprintf("OK → %s", e.Target)
	case domain.OutcomeAlreadyPlaced:
		return fmt.Sprintf("already placed: %s", e.Target)
	case domain.OutcomeWouldCopy:
		return fmt.Sprintf("would copy %s → %s", e.File, e.Target)
	case domain.OutcomeMissingSource:
		return fmt.Sprintf("MISSING: %s", e.File)
	case domain.OutcomeUnparseableDate:
		return fmt.Sprintf("no date: %s", e.File)
	case domain.OutcomeCopyFailed:
		return fmt.Sprintf("FAILED: %s: %v", e.File, e.Err)
	case domain.OutcomeCancelled:
		return fmt.Sprintf("cancelled: %s", e.File)
	default:
		return e.File
	}
}
