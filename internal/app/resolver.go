package app

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"time"

	"memorg/internal/domain"
)

// ErrNoDate is returned when every tier of the fallback chain fails,
// which in practice means the file itself was inaccessible.
var ErrNoDate = errors.New("no date could be resolved")

var filenameDateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// Resolver picks exactly one calendar date per entry by trying tiers in
// strict order and stopping at the first success.
type Resolver struct {
	FS   FileSystem
	Exif ExifReader
	// UseExif enables an extra EXIF tier between the filename and
	// filesystem tiers. Off by default.
	UseExif bool
}

type tier func(ctx context.Context, entry domain.MediaEntry) (domain.ResolvedDate, bool)

// Resolve runs the fallback chain for one entry. For a fixed manifest
// and filesystem state the result is deterministic.
func (r *Resolver) Resolve(ctx context.Context, entry domain.MediaEntry) (domain.ResolvedDate, error) {
	tiers := []tier{r.fromManifest, r.fromFilename}
	if r.UseExif && r.Exif != nil {
		tiers = append(tiers, r.fromExif)
	}
	tiers = append(tiers, r.fromTimestamp)

	for _, t := range tiers {
		if resolved, ok := t(ctx, entry); ok {
			return resolved, nil
		}
	}
	return domain.ResolvedDate{}, ErrNoDate
}

func (r *Resolver) fromManifest(_ context.Context, entry domain.MediaEntry) (domain.ResolvedDate, bool) {
	date, ok := parseCalendarDate(entry.EmbeddedDateText)
	if !ok {
		return domain.ResolvedDate{}, false
	}
	return domain.ResolvedDate{Date: date, Source: domain.SourceManifest}, true
}

func (r *Resolver) fromFilename(_ context.Context, entry domain.MediaEntry) (domain.ResolvedDate, bool) {
	name := filepath.Base(entry.SourcePath)
	for _, candidate := range filenameDateRe.FindAllString(name, -1) {
		if date, ok := parseCalendarDate(candidate); ok {
			return domain.ResolvedDate{Date: date, Source: domain.SourceFilename}, true
		}
	}
	return domain.ResolvedDate{}, false
}

func (r *Resolver) fromExif(ctx context.Context, entry domain.MediaEntry) (domain.ResolvedDate, bool) {
	taken, err := r.Exif.DateTimeOriginal(ctx, entry.SourcePath)
	if err != nil {
		return domain.ResolvedDate{}, false
	}
	return domain.ResolvedDate{Date: dayOf(taken), Source: domain.SourceExif}, true
}

func (r *Resolver) fromTimestamp(_ context.Context, entry domain.MediaEntry) (domain.ResolvedDate, bool) {
	info, err := r.FS.Stat(entry.SourcePath)
	if err != nil {
		return domain.ResolvedDate{}, false
	}
	return domain.ResolvedDate{Date: dayOf(info.ModTime().Local()), Source: domain.SourceTimestamp}, true
}

// parseCalendarDate accepts only calendar-valid YYYY-MM-DD values;
// time.ParseInLocation rejects out-of-range months and days, leap years
// included.
func parseCalendarDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation("2006-01-02", text, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
