package pdfkit

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/model"
)

// FitzRenderer rasterises pages with MuPDF through go-fitz.
type FitzRenderer struct{}

var _ convert.Renderer = FitzRenderer{}

// Open loads data into MuPDF. MuPDF prints repair warnings for damaged
// files straight to the process stderr; go-fitz exposes no hook to route
// them into slog.
func (FitzRenderer) Open(data []byte) (convert.RenderSession, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &fitzSession{doc: doc}, nil
}

type fitzSession struct {
	doc *fitz.Document
}

func (s *fitzSession) PageCount() int {
	return s.doc.NumPage()
}

// RenderPage returns a PNG of the page at dpi and the page size in points.
func (s *fitzSession) RenderPage(index int, dpi float64) (convert.RenderedPage, error) {
	if index < 0 || index >= s.doc.NumPage() {
		return convert.RenderedPage{}, fmt.Errorf("%w: page %d", convert.ErrPageOutOfRange, index+1)
	}
	// Bound is reported at 72 dpi, which is PDF points.
	bounds, err := s.doc.Bound(index)
	if err != nil {
		return convert.RenderedPage{}, err
	}
	img, err := s.doc.ImagePNG(index, dpi)
	if err != nil {
		return convert.RenderedPage{}, err
	}
	return convert.RenderedPage{
		Image: img,
		Size:  model.PageSize{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())},
	}, nil
}

func (s *fitzSession) Close() error {
	return s.doc.Close()
}
