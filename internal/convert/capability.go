package convert

import (
	"context"

	"pdfdocx/internal/model"
)

// TextCapability converts a PDF into a DOCX whose text stays editable.
// A nil range converts every page.
type TextCapability interface {
	Convert(ctx context.Context, pdf []byte, pages *model.PageRange) ([]byte, error)
}

// Renderer opens a PDF for page rasterisation.
type Renderer interface {
	Open(pdf []byte) (RenderSession, error)
}

// RenderSession renders pages of one opened PDF. Page indexes are 0-based.
type RenderSession interface {
	PageCount() int
	RenderPage(index int, dpi float64) (RenderedPage, error)
	Close() error
}

// RenderedPage is one rasterised page plus the source page size in points.
type RenderedPage struct {
	Image []byte
	Size  model.PageSize
}

// PageDocument assembles rendered pages into a DOCX, one picture per page.
type PageDocument interface {
	AddPage(image []byte, size model.PageSize) error
	Bytes() ([]byte, error)
}
