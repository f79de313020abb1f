package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_SaveAndRemove(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := s.Save("notes.txt", strings.NewReader("Networking\nProtocol: TCP\n"), 1024)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != s.Dir {
		t.Errorf("expected file inside %q, got %q", s.Dir, path)
	}
	if !strings.HasSuffix(path, "-notes.txt") {
		t.Errorf("expected extension to be preserved, got %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Networking\nProtocol: TCP\n" {
		t.Errorf("unexpected content %q", data)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file removed, got %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
}

func TestStore_SameNameNoCollision(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.Save("doc.txt", strings.NewReader("a"), 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Save("doc.txt", strings.NewReader("b"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("expected distinct paths, got %q twice", a)
	}
}

func TestStore_TooLarge(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Save("big.txt", strings.NewReader(strings.Repeat("x", 11)), 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(s.Dir)
	if len(entries) != 0 {
		t.Errorf("expected partial upload to be removed, found %d files", len(entries))
	}

	if _, err := s.Save("exact.txt", strings.NewReader(strings.Repeat("x", 10)), 10); err != nil {
		t.Errorf("expected upload at the limit to succeed, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"notes.txt":             "notes.txt",
		"../../etc/passwd":      "passwd",
		`C:\Users\me\notes.pdf`: "notes.pdf",
		"a..b.txt":              "a_b.txt",
		"":                      "unnamed",
		"..":                    "unnamed",
		"/":                     "unnamed",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
