package convert

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pdfdocx/internal/model"
)

// DefaultDPI renders at twice the PDF's native 72 dpi.
const DefaultDPI = 144

// ImageConverter rasterises pages and embeds them as full-page pictures.
type ImageConverter struct {
	renderer Renderer
	newDoc   func() PageDocument
	dpi      float64
}

// NewImageConverter builds an ImageConverter. A non-positive dpi selects DefaultDPI.
func NewImageConverter(r Renderer, newDoc func() PageDocument, dpi float64) *ImageConverter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &ImageConverter{renderer: r, newDoc: newDoc, dpi: dpi}
}

// Convert renders every selected page before assembling the document, so a
// failure on any page yields no output at all.
func (c *ImageConverter) Convert(ctx context.Context, pdf []byte, pages *model.PageRange) ([]byte, int, error) {
	session, err := c.renderer.Open(pdf)
	if err != nil {
		return nil, 0, c.fail(fmt.Errorf("open pdf: %w", err))
	}
	defer session.Close()

	first, last, err := resolvePages(pages, session.PageCount())
	if err != nil {
		return nil, 0, c.fail(err)
	}

	tracer := otel.Tracer("pdfdocx/convert")
	rendered := make([]RenderedPage, 0, last-first+1)
	for i := first; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		_, span := tracer.Start(ctx, "render_page", trace.WithAttributes(
			attribute.Int("pdf.page", i+1),
			attribute.Float64("render.dpi", c.dpi),
		))
		p, err := session.RenderPage(i, c.dpi)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render failed")
			span.End()
			return nil, 0, c.fail(fmt.Errorf("render page %d: %w", i+1, err))
		}
		span.End()
		rendered = append(rendered, p)
	}

	doc := c.newDoc()
	for i, p := range rendered {
		if err := doc.AddPage(p.Image, p.Size); err != nil {
			return nil, 0, c.fail(fmt.Errorf("embed page %d: %w", first+i+1, err))
		}
	}
	out, err := doc.Bytes()
	if err != nil {
		return nil, 0, c.fail(fmt.Errorf("write docx: %w", err))
	}
	return out, len(rendered), nil
}

func (c *ImageConverter) fail(err error) error {
	return &ConversionError{Mode: model.ModeImageFallback, Err: err}
}
