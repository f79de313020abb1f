package questions

import "errors"

var (
	// ErrUnsupportedLanguage is returned when no template catalog exists for
	// the requested language profile.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidArgument is returned for caller misuse such as a negative
	// question count.
	ErrInvalidArgument = errors.New("invalid argument")
)
