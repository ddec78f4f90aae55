// Package docxbuild writes and inspects the DOCX files produced by the converters.
package docxbuild

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

const (
	emuPerPoint   = 12700
	twipsPerPoint = 20
)

// A4 in points, used when a page reports no usable size.
const (
	a4WidthPt  = 595.3
	a4HeightPt = 841.9
)

// maxPagePt is the largest page edge Word accepts (22 inches).
const maxPagePt = 1584

var ErrNoDocumentXML = errors.New("word/document.xml not found")

func newDocument() *docx.Docx {
	return docx.New().WithDefaultTheme().WithA4Page()
}

func write(doc *docx.Docx) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CountPages returns the number of pages implied by explicit page breaks in a DOCX.
func CountPages(data []byte) (int, error) {
	rc, err := openDocumentXML(data)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	pages := 1
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("parse document.xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "br" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "type" && a.Value == "page" {
				pages++
			}
		}
	}
	return pages, nil
}

// Paragraphs returns the text of every top-level paragraph in a DOCX.
func Paragraphs(data []byte) ([]string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	var out []string
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			out = append(out, p.String())
		}
	}
	return out, nil
}

// CountPictures returns the number of drawings in a DOCX body.
func CountPictures(data []byte) (int, error) {
	rc, err := openDocumentXML(data)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n := 0
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("parse document.xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "drawing" {
			n++
		}
	}
}

func openDocumentXML(data []byte) (io.ReadCloser, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			return f.Open()
		}
	}
	return nil, ErrNoDocumentXML
}
