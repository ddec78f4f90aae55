// Package convert holds the PDF to DOCX dispatch logic: input validation,
// page-range parsing and the two conversion strategies.
package convert

import (
	"context"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pdfdocx/internal/model"
)

// Converter is the shape shared by both strategies.
type Converter interface {
	Convert(ctx context.Context, pdf []byte, pages *model.PageRange) ([]byte, int, error)
}

// Dispatcher validates a request and routes it to exactly one converter.
type Dispatcher struct {
	converters map[model.Mode]Converter
}

// NewDispatcher wires the text-preserving and image-fallback converters.
func NewDispatcher(text, image Converter) *Dispatcher {
	return &Dispatcher{converters: map[model.Mode]Converter{
		model.ModeTextPreserving: text,
		model.ModeImageFallback:  image,
	}}
}

// Convert runs the converter selected by req.Mode over doc.
func (d *Dispatcher) Convert(ctx context.Context, doc model.UploadedDocument, req model.ConversionRequest) (*model.ConversionResult, error) {
	if err := Validate(doc, req); err != nil {
		return nil, err
	}
	conv, ok := d.converters[req.Mode]
	if !ok || conv == nil {
		return nil, &ValidationError{Field: "mode", Reason: "unsupported conversion mode " + string(req.Mode)}
	}

	ctx, span := otel.Tracer("pdfdocx/convert").Start(ctx, "convert", trace.WithAttributes(
		attribute.String("conversion.mode", string(req.Mode)),
		attribute.Int("pdf.size", len(doc.Data)),
	))
	defer span.End()

	data, pages, err := conv.Convert(ctx, doc.Data, req.Pages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "conversion failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("docx.pages", pages))

	return &model.ConversionResult{
		Filename:    ResultFilename(doc.Filename),
		ContentType: model.DocxContentType,
		Data:        data,
		Mode:        req.Mode,
		PageCount:   pages,
	}, nil
}

// Validate rejects empty uploads, unknown modes and malformed page ranges.
func Validate(doc model.UploadedDocument, req model.ConversionRequest) error {
	if len(doc.Data) == 0 {
		return &ValidationError{Field: "file", Reason: "uploaded document is empty", Err: ErrEmptyDocument}
	}
	if !req.Mode.Valid() {
		return &ValidationError{Field: "mode", Reason: "unsupported conversion mode " + string(req.Mode)}
	}
	return ValidatePageRange(req.Pages)
}

// ResultFilename replaces the upload's extension with .docx.
func ResultFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "document.docx"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "document"
	}
	return stem + ".docx"
}
