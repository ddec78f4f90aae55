package pdfkit

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	domain "pdfdocx/internal/model"
)

// Inspector reports page count and page sizes using pdfcpu.
type Inspector struct {
	conf *model.Configuration
}

func NewInspector() *Inspector {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

func (i *Inspector) Inspect(data []byte) (*domain.DocumentInfo, error) {
	dims, err := api.PageDims(bytes.NewReader(data), i.conf)
	if err != nil {
		return nil, fmt.Errorf("read page dimensions: %w", err)
	}
	info := &domain.DocumentInfo{
		PageCount: len(dims),
		Pages:     make([]domain.PageSize, len(dims)),
	}
	for n, d := range dims {
		info.Pages[n] = domain.PageSize{Width: d.Width, Height: d.Height}
	}
	return info, nil
}
