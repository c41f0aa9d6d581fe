package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Role distinguishes the primary file of a manifest entry from a paired
// supplementary file (e.g. the short video attached to a photo).
type Role int

const (
	RolePrimary Role = iota
	RoleClip
)

// MediaEntry is one media reference found in the manifest. It is created
// once per scan and never mutated afterwards.
type MediaEntry struct {
	// SourcePath is the referenced file, resolved relative to the
	// manifest's directory. The file may or may not exist on disk.
	SourcePath string
	// RawRef is the reference exactly as it appeared in the markup,
	// kept for reporting.
	RawRef string
	// EmbeddedDateText is the raw YYYY-MM-DD text found near the entry,
	// empty when the manifest carried none. Not yet validated.
	EmbeddedDateText string
	Role             Role
}

// Name returns the base name of the referenced file.
func (e MediaEntry) Name() string {
	return filepath.Base(e.SourcePath)
}

// Ext returns the lower-cased extension of the referenced file.
func (e MediaEntry) Ext() string {
	return strings.ToLower(filepath.Ext(e.SourcePath))
}

// DateSource tags which fallback tier produced a ResolvedDate.
type DateSource string

const (
	SourceManifest  DateSource = "manifest"
	SourceFilename  DateSource = "filename"
	SourceExif      DateSource = "exif"
	SourceTimestamp DateSource = "filesystem-timestamp"
)

// ResolvedDate is the calendar date chosen for one MediaEntry.
type ResolvedDate struct {
	Date   time.Time
	Source DateSource
}

// Day renders the date as YYYY-MM-DD.
func (r ResolvedDate) Day() string {
	return r.Date.Format("2006-01-02")
}

// Month renders the date as YYYY-MM.
func (r ResolvedDate) Month() string {
	return r.Date.Format("2006-01")
}

// Year renders the four digit year.
func (r ResolvedDate) Year() string {
	return r.Date.Format("2006")
}

func IsImageExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".bmp":
		return true
	default:
		return false
	}
}

func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v":
		return true
	default:
		return false
	}
}

// IsMediaExtension reports whether ext belongs to a file the manifest can
// legitimately reference.
func IsMediaExtension(ext string) bool {
	return IsImageExtension(ext) || IsVideoExtension(ext)
}
