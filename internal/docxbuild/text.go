package docxbuild

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/fumiama/go-docx"
)

// TextDocument collects editable lines page by page.
type TextDocument struct {
	doc          *docx.Docx
	pages        int
	pendingBreak bool
}

func NewTextDocument() *TextDocument {
	return &TextDocument{doc: newDocument()}
}

// NewPage starts a page; the first line added afterwards begins after a page break.
func (d *TextDocument) NewPage() {
	if d.pendingBreak {
		// previous page had no lines
		d.doc.AddParagraph().AddPageBreaks()
	}
	d.pendingBreak = d.pages > 0
	d.pages++
}

// AddLine appends one paragraph. fontSize is in points; zero keeps the default.
func (d *TextDocument) AddLine(text string, fontSize float64) {
	if d.pages == 0 {
		d.NewPage()
	}
	p := d.doc.AddParagraph()
	if d.pendingBreak {
		p.AddPageBreaks()
		d.pendingBreak = false
	}
	run := p.AddText(clean(text))
	if hp := halfPoints(fontSize); hp != "" {
		run.Size(hp)
	}
}

// Pages returns the number of pages started so far.
func (d *TextDocument) Pages() int { return d.pages }

func (d *TextDocument) Bytes() ([]byte, error) {
	if d.pendingBreak {
		d.doc.AddParagraph().AddPageBreaks()
		d.pendingBreak = false
	}
	if d.pages == 0 {
		d.doc.AddParagraph()
	}
	return write(d.doc)
}

// halfPoints formats a point size the way w:sz expects it.
func halfPoints(pt float64) string {
	if pt <= 0 || math.IsNaN(pt) || math.IsInf(pt, 0) {
		return ""
	}
	hp := int(math.Round(pt * 2))
	if hp < 2 {
		hp = 2
	}
	if hp > 3276 {
		hp = 3276
	}
	return strconv.Itoa(hp)
}

func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
}
