// Package pdfkit adapts third-party PDF libraries to the conversion capabilities:
// ledongthuc/pdf for the text layer, go-fitz for rasterising and pdfcpu for inspection.
package pdfkit

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/docxbuild"
	"pdfdocx/internal/model"
)

// LayoutConverter rebuilds a PDF's text layer as editable DOCX paragraphs,
// one paragraph per text row, keeping the source font size and page breaks.
type LayoutConverter struct{}

var _ convert.TextCapability = LayoutConverter{}

func (LayoutConverter) Convert(ctx context.Context, data []byte, pages *model.PageRange) (out []byte, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("read pdf: %v", r)
		}
	}()

	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := rdr.NumPage()
	if total < 1 {
		return nil, convert.ErrNoPages
	}
	first, last := 1, total
	if pages != nil {
		if pages.End > total {
			return nil, fmt.Errorf("%w: requested %s, document has %d pages", convert.ErrPageOutOfRange, pages, total)
		}
		first, last = pages.Start, pages.End
	}

	doc := docxbuild.NewTextDocument()
	for i := first; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.NewPage()

		p := rdr.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, row := range groupRows(p.Content().Text) {
			text, size := joinRow(row)
			if strings.TrimSpace(text) == "" {
				continue
			}
			doc.AddLine(text, size)
		}
	}
	return doc.Bytes()
}

// groupRows buckets glyphs into rows by baseline, top of the page first.
func groupRows(glyphs []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var (
		rows [][]pdf.Text
		rowY float64
	)
	for _, g := range sorted {
		tol := g.FontSize * 0.5
		if tol < 2 {
			tol = 2
		}
		if len(rows) == 0 || math.Abs(rowY-g.Y) > tol {
			rows = append(rows, nil)
			rowY = g.Y
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], g)
	}
	return rows
}

// joinRow orders a row's text runs left to right and inserts a space where the
// horizontal gap between runs is wider than a fraction of the font size.
func joinRow(runs []pdf.Text) (string, float64) {
	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		b       strings.Builder
		maxSize float64
		prevEnd float64
	)
	for i, t := range sorted {
		if t.FontSize > maxSize {
			maxSize = t.FontSize
		}
		if i > 0 && b.Len() > 0 {
			gap := t.X - prevEnd
			threshold := t.FontSize * 0.25
			if threshold <= 0 {
				threshold = 1
			}
			if gap > threshold && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return b.String(), maxSize
}
