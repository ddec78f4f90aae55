package convert

import (
	"context"
	"errors"

	"pdfdocx/internal/docxbuild"
	"pdfdocx/internal/model"
)

// TextConverter produces editable DOCX output through a TextCapability.
type TextConverter struct {
	capability TextCapability
}

func NewTextConverter(c TextCapability) *TextConverter {
	return &TextConverter{capability: c}
}

// Convert returns the DOCX bytes and the number of pages converted.
func (c *TextConverter) Convert(ctx context.Context, pdf []byte, pages *model.PageRange) ([]byte, int, error) {
	out, err := c.capability.Convert(ctx, pdf, pages)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, err
		}
		return nil, 0, &ConversionError{Mode: model.ModeTextPreserving, Err: err}
	}
	if len(out) == 0 {
		return nil, 0, &ConversionError{Mode: model.ModeTextPreserving, Err: errors.New("converter produced no output")}
	}
	n, err := docxbuild.CountPages(out)
	if err != nil {
		return nil, 0, &ConversionError{Mode: model.ModeTextPreserving, Err: err}
	}
	return out, n, nil
}
