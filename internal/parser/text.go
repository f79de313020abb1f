package parser

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid UTF-8")

// TextExtractor handles plain text files. Content is returned verbatim.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}
