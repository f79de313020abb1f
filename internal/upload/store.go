package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Store saves uploaded documents to a local directory until they have been
// processed.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save copies at most maxBytes from r into the store. The stored name keeps
// the sanitized client filename, and therefore its extension, behind a
// unique prefix.
func (s *Store) Save(filename string, r io.Reader, maxBytes int64) (string, error) {
	name := uuid.NewString() + "-" + SanitizeFilename(filename)
	path := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxBytes {
		err = fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a previously saved upload. Removing a missing file is not
// an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// SanitizeFilename strips path components from a client-supplied name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "_" {
		name = "unnamed"
	}
	return name
}
