package app

import (
	"context"
	"io/fs"
	"time"

	"memorg/internal/domain"
)

type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
	SameContent(a, b string) (bool, error)
}

// EntrySource abstracts the manifest scan so the underlying markup
// parser can be swapped without touching the resolver or planner.
type EntrySource interface {
	ScanFile(path string) ([]domain.MediaEntry, error)
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}
