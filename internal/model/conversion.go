package model

import (
	"fmt"
	"time"
)

// DocxContentType is the MIME type of every produced document.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// UploadedDocument is the raw PDF received from a client.
// It lives for a single request and is never persisted.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

// PageRange is an inclusive, 1-indexed, contiguous page selection.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of pages covered by the range.
func (r PageRange) Len() int {
	return r.End - r.Start + 1
}

func (r PageRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ConversionRequest carries the user's choices for one conversion.
// A nil Pages selects every page of the document.
type ConversionRequest struct {
	Mode  Mode
	Pages *PageRange
}

// ConversionResult is the generated DOCX handed back to the caller.
type ConversionResult struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Mode        Mode   `json:"mode"`
	PageCount   int    `json:"page_count"`
	DownloadURL string `json:"download_url,omitempty"`
}

// PageSize is a page's media box size in PDF points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentInfo describes an uploaded PDF before conversion.
type DocumentInfo struct {
	PageCount int        `json:"page_count"`
	Pages     []PageSize `json:"pages"`
}

// Conversion outcomes stored in history records.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ConversionRecord is the metadata kept for a finished conversion when history is enabled.
// It never holds document bytes; StoragePath is set only when the result was archived.
type ConversionRecord struct {
	ID             string    `json:"id"`
	SourceFilename string    `json:"source_filename"`
	ResultFilename string    `json:"result_filename"`
	Mode           Mode      `json:"mode"`
	PageStart      *int      `json:"page_start,omitempty"`
	PageEnd        *int      `json:"page_end,omitempty"`
	PageCount      int       `json:"page_count"`
	SourceSize     int64     `json:"source_size"`
	ResultSize     int64     `json:"result_size"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	StoragePath    string    `json:"storage_path,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
