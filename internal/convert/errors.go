package convert

import (
	"errors"
	"fmt"

	"pdfdocx/internal/model"
)

var (
	ErrEmptyDocument  = errors.New("uploaded document is empty")
	ErrPageOutOfRange = errors.New("page range outside document bounds")
	ErrNoPages        = errors.New("document has no pages")
)

// ValidationError reports bad user input detected before any conversion starts.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConversionError reports a failure of the underlying conversion or rendering library.
type ConversionError struct {
	Mode model.Mode
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed: %v", e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConversion reports whether err is (or wraps) a ConversionError.
func IsConversion(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}
