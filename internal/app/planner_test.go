package app

import (
	"path/filepath"
	"testing"
	"time"

	"memorg/internal/config"
	"memorg/internal/domain"
)

func resolvedOn(day string) domain.ResolvedDate {
	parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		panic(err)
	}
	return domain.ResolvedDate{Date: parsed, Source: domain.SourceManifest}
}

func TestPlannerLayout(t *testing.T) {
	planner := Planner{FS: newMockFS()}

	placement, err := planner.Plan("/out", resolvedOn("2019-05-02"), domain.MediaEntry{SourcePath: "/export/IMG_20190501.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placement.Directory != filepath.Join("/out", "2019", "2019-05") {
		t.Fatalf("unexpected directory: %s", placement.Directory)
	}
	if placement.FileName != "2019-05-02_original.jpg" {
		t.Fatalf("unexpected file name: %s", placement.FileName)
	}
	if placement.AlreadyPlaced {
		t.Fatalf("expected a fresh placement")
	}
}

func TestPlannerLowercasesExtensionAndTagsClips(t *testing.T) {
	planner := Planner{FS: newMockFS()}

	placement, err := planner.Plan("/out", resolvedOn("2020-03-03"), domain.MediaEntry{
		SourcePath: "/export/VID001.MP4",
		Role:       domain.RoleClip,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placement.FileName != "2020-03-03_clip.mp4" {
		t.Fatalf("unexpected file name: %s", placement.FileName)
	}
}

func TestPlannerDisambiguatesWithinRun(t *testing.T) {
	planner := Planner{FS: newMockFS()}
	date := resolvedOn("2020-03-03")

	first, err := planner.Plan("/out", date, domain.MediaEntry{SourcePath: "/export/a.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := planner.Plan("/out", date, domain.MediaEntry{SourcePath: "/export/b.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.FileName != "2020-03-03_original.jpg" {
		t.Fatalf("unexpected first name: %s", first.FileName)
	}
	if second.FileName != "2020-03-03_original_1.jpg" {
		t.Fatalf("unexpected second name: %s", second.FileName)
	}
}

func TestPlannerSkipsWhenContentAlreadyPlaced(t *testing.T) {
	mock := newMockFS()
	target := filepath.Join("/out", "2020", "2020-03", "2020-03-03_original.jpg")
	mock.exists[target] = true
	mock.same[target] = true

	planner := Planner{FS: mock}
	placement, err := planner.Plan("/out", resolvedOn("2020-03-03"), domain.MediaEntry{SourcePath: "/export/a.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !placement.AlreadyPlaced {
		t.Fatalf("expected already placed")
	}
	if placement.FileName != "2020-03-03_original.jpg" {
		t.Fatalf("unexpected file name: %s", placement.FileName)
	}
}

func TestPlannerNeverOverwritesDifferentContent(t *testing.T) {
	mock := newMockFS()
	target := filepath.Join("/out", "2020", "2020-03", "2020-03-03_original.jpg")
	mock.exists[target] = true

	planner := Planner{FS: mock}
	placement, err := planner.Plan("/out", resolvedOn("2020-03-03"), domain.MediaEntry{SourcePath: "/export/a.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placement.AlreadyPlaced {
		t.Fatalf("expected a new name, not already placed")
	}
	if placement.FileName != "2020-03-03_original_1.jpg" {
		t.Fatalf("unexpected file name: %s", placement.FileName)
	}
}

func TestPlannerClaimedNameIsNotProofOfPlacement(t *testing.T) {
	mock := newMockFS()
	planner := Planner{FS: mock}
	date := resolvedOn("2020-03-03")
	entry := domain.MediaEntry{SourcePath: "/export/a.jpg"}

	first, err := planner.Plan("/out", date, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The copy for the first plan never landed on disk; planning the
	// same source again must hand out the name for a fresh copy rather
	// than reporting it already placed.
	second, err := planner.Plan("/out", date, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.AlreadyPlaced {
		t.Fatalf("expected a fresh placement when nothing is on disk")
	}
	if second.FileName != first.FileName {
		t.Fatalf("expected the claimed name to be reused, got %s", second.FileName)
	}

	// Once the file exists, the same source is recognized as placed.
	mock.exists[first.Path()] = true
	third, err := planner.Plan("/out", date, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !third.AlreadyPlaced {
		t.Fatalf("expected already placed once the copy landed")
	}
}

func TestPlannerCustomTagPolicy(t *testing.T) {
	planner := Planner{FS: newMockFS(), Tags: config.TagPolicy{Primary: "photo", Clip: "video"}}

	placement, err := planner.Plan("/out", resolvedOn("2020-03-03"), domain.MediaEntry{SourcePath: "/export/a.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placement.FileName != "2020-03-03_photo.jpg" {
		t.Fatalf("unexpected file name: %s", placement.FileName)
	}
}
