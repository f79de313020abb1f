package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/questions"
)

const sampleDoc = "Networking\nProtocol: TCP is reliable\n\nSecurity\nFirewall: filters traffic\n"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate_List(t *testing.T) {
	path := writeDoc(t, "notes.txt", sampleDoc)

	out, err := runCLI(t, "generate", path, "-n", "5", "--seed", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1. ") || !strings.HasPrefix(lines[4], "5. ") {
		t.Errorf("expected numbered output, got %q", out)
	}

	again, err := runCLI(t, "generate", path, "-n", "5", "--seed", "3")
	if err != nil {
		t.Fatal(err)
	}
	if again != out {
		t.Error("expected identical output for the same seed")
	}
}

func TestGenerate_JSONAndPDF(t *testing.T) {
	path := writeDoc(t, "notes.txt", sampleDoc)
	pdfPath := filepath.Join(t.TempDir(), "sheet.pdf")

	out, err := runCLI(t, "generate", path, "--json", "--pdf", pdfPath, "-l", "english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got generateOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.File != "notes.txt" || got.Language != "english" || got.KeyPoints != 2 {
		t.Errorf("unexpected output %+v", got)
	}
	if len(got.Questions) != 8 {
		t.Errorf("expected 8 questions, got %d", len(got.Questions))
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("expected worksheet: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected PDF worksheet")
	}
}

func TestGenerate_Errors(t *testing.T) {
	txt := writeDoc(t, "notes.txt", sampleDoc)
	csv := writeDoc(t, "notes.csv", sampleDoc)

	if _, err := runCLI(t, "generate", txt, "-l", "klingon"); !errors.Is(err, questions.ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if _, err := runCLI(t, "generate", csv); !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := runCLI(t, "generate", txt, "--count=-2"); !errors.Is(err, questions.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := runCLI(t, "generate"); err == nil {
		t.Error("expected error without a file argument")
	}
}

func TestLanguages(t *testing.T) {
	out, err := runCLI(t, "languages")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "english") {
		t.Errorf("expected english in %q", out)
	}
}
