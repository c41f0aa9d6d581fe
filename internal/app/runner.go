package app

import (
	"context"
	goerrors "errors"
	"path/filepath"
	"syscall"

	"memorg/internal/domain"
	"memorg/internal/errors"
	"memorg/internal/logging"
)

// Runner drives the full pipeline: scan the manifest, then for each
// entry resolve a date, plan a placement and copy the file. Entries are
// processed strictly one at a time in manifest order; cancellation is
// polled at entry boundaries only, so an in-flight copy always finishes.
type Runner struct {
	FS       FileSystem
	Entries  EntrySource
	Resolver *Resolver
	Planner  *Planner
	Logger   logging.Logger
	DryRun   bool
	// OnEvent receives one progress event per entry, including the
	// trailing cancelled entries when a run is cut short.
	OnEvent func(domain.Event)
}

// Run processes the manifest at manifestPath into outputRoot. Per-entry
// failures are recorded in the summary and never abort the run; the
// returned error is reserved for pre-run problems and a full
// destination volume.
func (r *Runner) Run(ctx context.Context, manifestPath, outputRoot string) (domain.Summary, error) {
	var summary domain.Summary

	if r.FS == nil || r.Entries == nil || r.Resolver == nil || r.Planner == nil {
		return summary, errors.Wrap(errors.Internal, "run", "", goerrors.New("runner is missing collaborators"))
	}

	stop := r.Logger.Measure("Organizing memories")
	defer stop()

	entries, err := r.Entries.ScanFile(manifestPath)
	if err != nil {
		return summary, errors.Wrap(errors.ParseFailure, "scan", manifestPath, err)
	}
	if len(entries) == 0 {
		return summary, errors.Wrap(errors.ParseFailure, "scan", manifestPath, goerrors.New("no media references found"))
	}
	summary.Total = len(entries)
	r.Logger.Verbosef("Found %d media references in %s", len(entries), manifestPath)

	manifestDir := filepath.Dir(manifestPath)

	for i, entry := range entries {
		select {
		case <-ctx.Done():
			r.cancelRemaining(&summary, entries[i:], i)
			r.Logger.Infof("Cancelled after %d of %d entries", i, len(entries))
			return summary, nil
		default:
		}

		event := r.processEntry(ctx, entry, manifestDir, outputRoot)
		event.Processed = i + 1
		event.Total = len(entries)
		summary.Record(event.Outcome)
		if event.Err != nil {
			summary.Errors = append(summary.Errors, event.File+": "+event.Err.Error())
			r.Logger.Warnf("%s: %v", event.File, event.Err)
		}
		r.emit(event)

		if event.Err != nil && goerrors.Is(event.Err, syscall.ENOSPC) {
			r.cancelRemaining(&summary, entries[i+1:], i+1)
			return summary, errors.Wrap(errors.DiskFull, "copy", outputRoot, event.Err)
		}
	}

	return summary, nil
}

func (r *Runner) processEntry(ctx context.Context, entry domain.MediaEntry, manifestDir, outputRoot string) domain.Event {
	event := domain.Event{File: entry.Name()}

	exists, err := r.FS.Exists(entry.SourcePath)
	if err == nil && !exists {
		// Some exports reference subfolders that were flattened on
		// disk; retry the bare name next to the manifest.
		alt := filepath.Join(manifestDir, entry.Name())
		if altExists, altErr := r.FS.Exists(alt); altErr == nil && altExists {
			entry.SourcePath = alt
			exists = true
		}
	}
	if err != nil || !exists {
		event.Outcome = domain.OutcomeMissingSource
		return event
	}

	resolved, err := r.Resolver.Resolve(ctx, entry)
	if err != nil {
		event.Outcome = domain.OutcomeUnparseableDate
		return event
	}
	event.Source = resolved.Source

	placement, err := r.Planner.Plan(outputRoot, resolved, entry)
	if err != nil {
		event.Outcome = domain.OutcomeCopyFailed
		event.Err = err
		return event
	}
	event.Target = placement.Path()

	if placement.AlreadyPlaced {
		event.Outcome = domain.OutcomeAlreadyPlaced
		return event
	}
	if r.DryRun {
		event.Outcome = domain.OutcomeWouldCopy
		return event
	}

	if err := r.FS.MkdirAll(placement.Directory, 0o755); err != nil {
		event.Outcome = domain.OutcomeCopyFailed
		event.Err = err
		return event
	}
	if err := r.FS.CopyFile(entry.SourcePath, placement.Path()); err != nil {
		event.Outcome = domain.OutcomeCopyFailed
		event.Err = err
		return event
	}

	event.Outcome = domain.OutcomeCopied
	return event
}

func (r *Runner) cancelRemaining(summary *domain.Summary, remaining []domain.MediaEntry, processed int) {
	for _, entry := range remaining {
		summary.Record(domain.OutcomeCancelled)
		r.emit(domain.Event{
			Processed: processed,
			Total:     summary.Total,
			File:      entry.Name(),
			Outcome:   domain.OutcomeCancelled,
		})
	}
}

func (r *Runner) emit(event domain.Event) {
	if r.OnEvent != nil {
		r.OnEvent(event)
	}
}
