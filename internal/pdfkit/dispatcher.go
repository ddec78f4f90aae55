package pdfkit

import (
	"pdfdocx/internal/convert"
	"pdfdocx/internal/docxbuild"
)

// NewDispatcher wires both strategies onto the library-backed capabilities.
// dpi <= 0 selects convert.DefaultDPI.
func NewDispatcher(dpi float64) *convert.Dispatcher {
	return convert.NewDispatcher(
		convert.NewTextConverter(LayoutConverter{}),
		convert.NewImageConverter(FitzRenderer{}, newImageDocument, dpi),
	)
}

func newImageDocument() convert.PageDocument {
	return docxbuild.NewImageDocument()
}
