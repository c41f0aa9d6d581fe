package presentation

import (
	"bytes"
	"strings"
	"testing"

	"memorg/internal/domain"
)

func TestPrintEventFormatsOutcomes(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintEvent(domain.Event{
		Processed: 3,
		Total:     10,
		File:      "one.jpg",
		Target:    "/out/2019/2019-05/2019-05-02_original.jpg",
		Outcome:   domain.OutcomeCopied,
	})
	printer.PrintEvent(domain.Event{
		Processed: 4,
		Total:     10,
		File:      "gone.jpg",
		Outcome:   domain.OutcomeMissingSource,
	})

	output := buf.String()
	if !strings.Contains(output, "[3/10] OK → /out/2019/2019-05/2019-05-02_original.jpg") {
		t.Fatalf("missing copy line in %q", output)
	}
	if !strings.Contains(output, "[4/10] MISSING: gone.jpg") {
		t.Fatalf("missing skip line in %q", output)
	}
}

func TestPrintEventVerboseShowsDateSource(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Verbose: true}

	printer.PrintEvent(domain.Event{
		Processed: 1,
		Total:     1,
		File:      "one.jpg",
		Target:    "/out/2019/2019-05/2019-05-02_original.jpg",
		Outcome:   domain.OutcomeCopied,
		Source:    domain.SourceManifest,
	})

	if !strings.Contains(buf.String(), "(date via manifest)") {
		t.Fatalf("expected date source in %q", buf.String())
	}
}

func TestPrintSummarySections(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintSummary(domain.Summary{
		Total:         5,
		Copied:        2,
		AlreadyPlaced: 1,
		MissingSource: 1,
		Cancelled:     1,
		Errors:        []string{"bad.jpg: permission denied"},
	}, "/out")

	output := buf.String()
	for _, want := range []string{
		"Copied 2 of 5 files into /out.",
		"1 files were already in place.",
		"1 files were missing on disk.",
		"Cancelled with 1 files left unprocessed.",
		"- bad.jpg: permission denied",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in %q", want, output)
		}
	}
}

func TestPrintSummaryDryRun(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintSummary(domain.Summary{Total: 2, WouldCopy: 2}, "/out")

	if !strings.Contains(buf.String(), "Dry run: 2 of 2 files would be copied into /out.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
