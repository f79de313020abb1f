package export

import (
	"bytes"
	"testing"
	"time"
)

func TestWorksheetPDF(t *testing.T) {
	data, err := WorksheetPDF(Worksheet{
		Title:    "Questions",
		Source:   "notes.txt",
		Language: "english",
		Questions: []string{
			"Define Protocol.",
			"How does Protocol relate to networking?",
		},
		Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("expected PDF trailer")
	}
}

func TestWorksheetPDF_Empty(t *testing.T) {
	data, err := WorksheetPDF(Worksheet{Title: "Empty", Date: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty PDF")
	}
}
