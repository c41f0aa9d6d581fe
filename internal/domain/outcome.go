package domain

import "path/filepath"

// Outcome is the terminal status of one processed entry.
type Outcome string

const (
	OutcomeCopied          Outcome = "copied"
	OutcomeAlreadyPlaced   Outcome = "already-placed"
	OutcomeWouldCopy       Outcome = "would-copy"
	OutcomeMissingSource   Outcome = "skipped-missing-source"
	OutcomeUnparseableDate Outcome = "skipped-unparseable-date"
	OutcomeCopyFailed      Outcome = "copy-failed"
	OutcomeCancelled       Outcome = "cancelled"
)

// Placement is where one entry's file will live under the output root.
type Placement struct {
	Directory string
	FileName  string
	// AlreadyPlaced means the destination holds the same content
	// already, so the copy can be skipped on a re-run.
	AlreadyPlaced bool
}

// Path joins directory and file name.
func (p Placement) Path() string {
	return filepath.Join(p.Directory, p.FileName)
}

// Event is one progress report emitted after an entry is processed.
type Event struct {
	Processed int
	Total     int
	File      string
	Target    string
	Outcome   Outcome
	Source    DateSource
	Err       error
}

// Summary aggregates the outcomes of a full run. It is reported to the
// UI and not persisted anywhere.
type Summary struct {
	Total           int
	Copied          int
	AlreadyPlaced   int
	WouldCopy       int
	MissingSource   int
	UnparseableDate int
	CopyFailed      int
	Cancelled       int
	Errors          []string
}

// Record counts one outcome into the summary.
func (s *Summary) Record(outcome Outcome) {
	switch outcome {
	case OutcomeCopied:
		s.Copied++
	case OutcomeAlreadyPlaced:
		s.AlreadyPlaced++
	case OutcomeWouldCopy:
		s.WouldCopy++
	case OutcomeMissingSource:
		s.MissingSource++
	case OutcomeUnparseableDate:
		s.UnparseableDate++
	case OutcomeCopyFailed:
		s.CopyFailed++
	case OutcomeCancelled:
		s.Cancelled++
	}
}

// Processed is the number of entries that reached a terminal outcome
// other than cancelled.
func (s Summary) Processed() int {
	return s.Copied + s.AlreadyPlaced + s.WouldCopy + s.MissingSource + s.UnparseableDate + s.CopyFailed
}
