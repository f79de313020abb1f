package parser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Extractor
	}{
		{"notes.txt", &TextExtractor{}},
		{"NOTES.TXT", &TextExtractor{}},
		{"report.Pdf", &PDFExtractor{}},
		{"archive.tar.md", &MarkdownExtractor{}},
		{"readme.markdown", &MarkdownExtractor{}},
		{"page.htm", &HTMLExtractor{}},
		{"page.html", &HTMLExtractor{}},
		{"letter.docx", &DOCXExtractor{}},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got == nil {
			t.Fatalf("%s: nil extractor", tt.filename)
		}
		if want, have := typeName(tt.want), typeName(got); want != have {
			t.Errorf("%s: expected %s, got %s", tt.filename, want, have)
		}
	}
}

func typeName(e Extractor) string {
	switch e.(type) {
	case *TextExtractor:
		return "text"
	case *PDFExtractor:
		return "pdf"
	case *MarkdownExtractor:
		return "markdown"
	case *HTMLExtractor:
		return "html"
	case *DOCXExtractor:
		return "docx"
	}
	return "unknown"
}

func TestForFile_PDFOptions(t *testing.T) {
	ex, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ex.(*PDFExtractor).FallbackPdftotext {
		t.Error("expected fallback option to be carried over")
	}
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"data.csv", "image.png", "README", "pdf", "notes.txt.exe"} {
		_, err := ForFile(name, Options{})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := map[string]bool{
		"a.txt":  true,
		"a.PDF":  true,
		"a.md":   true,
		"a.docx": true,
		"a.csv":  false,
		"a":      false,
		"a.exe":  false,
	}
	for name, want := range tests {
		if got := IsSupportedExtension(name); got != want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestExtractFile_TextRoundTrip(t *testing.T) {
	content := "Networking\nProtocol: TCP is reliable\n\nünïcode: ✓\n"
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ExtractFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}

	// Extraction must not consume the source file.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to remain, got %v", err)
	}
}

func TestExtractFile_Unsupported(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "data.csv"), Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	var re *ReadError
	if errors.As(err, &re) {
		t.Error("unsupported format must not be reported as a read error")
	}
}

func TestExtractFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := ExtractFile(path, Options{})

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if re.Path != path {
		t.Errorf("expected path %q, got %q", path, re.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestExtractFile_ReadErrors(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"bad.txt":  []byte("\xff\xfe\xfd"),
		"bad.pdf":  []byte("not a pdf"),
		"bad.docx": []byte("not a zip"),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := ExtractFile(path, Options{})
		var re *ReadError
		if !errors.As(err, &re) {
			t.Errorf("%s: expected ReadError, got %v", name, err)
		}
	}
}

func TestExtractFile_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.PDF")
	if err := os.WriteFile(path, buildPDF(t, []string{"Networking"}), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Error("expected text from pdf")
	}
}
