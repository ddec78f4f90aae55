package docxbuild

import (
	"errors"
	"math"

	"github.com/fumiama/go-docx"

	"pdfdocx/internal/model"
)

// ImageDocument holds one full-bleed picture per page, separated by page breaks.
// The section is sized to the source pages with zero margins.
type ImageDocument struct {
	doc   *docx.Docx
	pages []imagePage
	sect  *docx.SectPr
}

type imagePage struct {
	inline *docx.WPInline
	size   model.PageSize
}

func NewImageDocument() *ImageDocument {
	return &ImageDocument{doc: docx.New().WithDefaultTheme()}
}

// AddPage appends a page image. Its extent is fixed in Bytes, once every
// page size is known.
func (d *ImageDocument) AddPage(image []byte, size model.PageSize) error {
	p := d.doc.AddParagraph()
	if len(d.pages) > 0 {
		p.AddPageBreaks()
	}
	run, err := p.AddInlineDrawing(image)
	if err != nil {
		return err
	}

	var inline *docx.WPInline
	for _, child := range run.Children {
		if drawing, ok := child.(*docx.Drawing); ok && drawing.Inline != nil {
			inline = drawing.Inline
		}
	}
	if inline == nil {
		return errors.New("drawing has no inline picture")
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = model.PageSize{Width: a4WidthPt, Height: a4HeightPt}
	}
	d.pages = append(d.pages, imagePage{inline: inline, size: size})
	return nil
}

// Pages returns the number of pages added so far.
func (d *ImageDocument) Pages() int { return len(d.pages) }

func (d *ImageDocument) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, errors.New("no pages added")
	}

	section := sectionSize(d.pages)
	for _, p := range d.pages {
		w, h := fitPage(p.size, section)
		p.inline.Size(w, h)
	}

	// w:sectPr must be the last child of w:body.
	if d.sect == nil {
		d.sect = &docx.SectPr{
			PgSz: &docx.PgSz{
				W: int(math.Round(section.Width * twipsPerPoint)),
				H: int(math.Round(section.Height * twipsPerPoint)),
			},
			PgMar: &docx.PgMar{},
		}
		d.doc.Document.Body.Items = append(d.doc.Document.Body.Items, d.sect)
	}
	return write(d.doc)
}

// sectionSize is the smallest page that holds every source page, capped at
// the largest size Word supports. Uniform documents get their exact page size.
func sectionSize(pages []imagePage) model.PageSize {
	var s model.PageSize
	for _, p := range pages {
		s.Width = math.Max(s.Width, p.size.Width)
		s.Height = math.Max(s.Height, p.size.Height)
	}
	s.Width = math.Min(s.Width, maxPagePt)
	s.Height = math.Min(s.Height, maxPagePt)
	return s
}

// fitPage converts a page size in points to an EMU extent. Pages that fit the
// section keep their source size; larger ones are scaled down with the aspect
// ratio kept.
func fitPage(size, section model.PageSize) (int64, int64) {
	scale := 1.0
	if s := section.Width / size.Width; s < scale {
		scale = s
	}
	if s := section.Height / size.Height; s < scale {
		scale = s
	}
	// Round down so the picture never overflows onto a second page.
	return int64(math.Floor(size.Width * scale * emuPerPoint)), int64(math.Floor(size.Height * scale * emuPerPoint))
}
