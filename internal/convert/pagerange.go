package convert

import (
	"fmt"
	"strconv"
	"strings"

	"pdfdocx/internal/model"
)

// rangeSeparators are accepted between start and end: hyphen, en dash, em dash.
var rangeSeparators = []string{"-", "–", "—"}

// ParsePageRange parses "N" or "N-M" into an inclusive 1-indexed range.
// Blank input yields nil, meaning every page.
func ParsePageRange(s string) (*model.PageRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	startStr, endStr := s, s
	for _, sep := range rangeSeparators {
		if i := strings.Index(s, sep); i >= 0 {
			startStr, endStr = s[:i], s[i+len(sep):]
			break
		}
	}

	start, err := parsePageNumber(startStr)
	if err != nil {
		return nil, err
	}
	end, err := parsePageNumber(endStr)
	if err != nil {
		return nil, err
	}

	r := &model.PageRange{Start: start, End: end}
	if err := ValidatePageRange(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidatePageRange checks 1 <= Start <= End. A nil range is valid.
func ValidatePageRange(r *model.PageRange) error {
	if r == nil {
		return nil
	}
	if r.Start < 1 || r.End < 1 {
		return &ValidationError{Field: "page range", Reason: "page numbers must be positive"}
	}
	if r.Start > r.End {
		return &ValidationError{Field: "page range", Reason: "start page is after end page"}
	}
	return nil
}

// parsePageNumber accepts plain ASCII digits only; signs are rejected.
func parsePageNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &ValidationError{Field: "page range", Reason: strconv.Quote(s) + " is not a page number"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "page range", Reason: strconv.Quote(s) + " is not a page number", Err: err}
	}
	if n < 1 {
		return 0, &ValidationError{Field: "page range", Reason: "page numbers must be positive"}
	}
	return n, nil
}

// resolvePages returns the 0-based, inclusive page indexes selected by r in a document of total pages.
func resolvePages(r *model.PageRange, total int) (first, last int, err error) {
	if total < 1 {
		return 0, 0, ErrNoPages
	}
	if r == nil {
		return 0, total - 1, nil
	}
	if r.End > total {
		return 0, 0, fmt.Errorf("%w: requested %s, document has %d pages", ErrPageOutOfRange, r, total)
	}
	return r.Start - 1, r.End - 1, nil
}
