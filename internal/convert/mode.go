package convert

import "pdfdocx/internal/model"

// ParseMode resolves a user-supplied mode key or label.
// Unknown values are reported as a ValidationError on the "mode" field.
func ParseMode(s string) (model.Mode, error) {
	m, err := model.ParseMode(s)
	if err != nil {
		return "", &ValidationError{Field: "mode", Reason: err.Error(), Err: err}
	}
	return m, nil
}
