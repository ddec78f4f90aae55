package pdfkit

import (
	"context"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/docxbuild"
	"pdfdocx/internal/model"
	"pdfdocx/internal/pdftest"
)

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestLayoutConverter_RoundTrip(t *testing.T) {
	src := pdftest.Build("Hello PDF world")

	out, err := LayoutConverter{}.Convert(context.Background(), src, nil)
	require.NoError(t, err)

	paras, err := docxbuild.Paragraphs(out)
	require.NoError(t, err)
	assert.Equal(t, "Hello PDF world", normalize(strings.Join(paras, " ")))

	pages, err := docxbuild.CountPages(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestLayoutConverter_PageRange(t *testing.T) {
	src := pdftest.Numbered(5)

	out, err := LayoutConverter{}.Convert(context.Background(), src, &model.PageRange{Start: 2, End: 4})
	require.NoError(t, err)

	pages, err := docxbuild.CountPages(out)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	paras, err := docxbuild.Paragraphs(out)
	require.NoError(t, err)
	text := normalize(strings.Join(paras, " "))
	assert.Contains(t, text, "Page 2")
	assert.Contains(t, text, "Page 3")
	assert.Contains(t, text, "Page 4")
	assert.NotContains(t, text, "Page 1")
	assert.NotContains(t, text, "Page 5")
	assert.Less(t, strings.Index(text, "Page 2"), strings.Index(text, "Page 4"))
}

func TestLayoutConverter_AllPages(t *testing.T) {
	out, err := LayoutConverter{}.Convert(context.Background(), pdftest.Numbered(4), nil)
	require.NoError(t, err)

	pages, err := docxbuild.CountPages(out)
	require.NoError(t, err)
	assert.Equal(t, 4, pages)
}

func TestLayoutConverter_MultiLine(t *testing.T) {
	out, err := LayoutConverter{}.Convert(context.Background(), pdftest.Build("first line\nsecond line"), nil)
	require.NoError(t, err)

	paras, err := docxbuild.Paragraphs(out)
	require.NoError(t, err)
	var nonEmpty []string
	for _, p := range paras {
		if s := normalize(p); s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	assert.Equal(t, []string{"first line", "second line"}, nonEmpty)
}

func TestLayoutConverter_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("out of range", func(t *testing.T) {
		_, err := LayoutConverter{}.Convert(ctx, pdftest.Numbered(2), &model.PageRange{Start: 2, End: 3})
		assert.ErrorIs(t, err, convert.ErrPageOutOfRange)
	})

	t.Run("corrupt", func(t *testing.T) {
		_, err := LayoutConverter{}.Convert(ctx, pdftest.Corrupt(), nil)
		assert.Error(t, err)
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := LayoutConverter{}.Convert(ctx, []byte("hello, I am a text file"), nil)
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := LayoutConverter{}.Convert(cctx, pdftest.Numbered(1), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestJoinRow(t *testing.T) {
	runs := []pdf.Text{
		{S: "world", X: 60, W: 25, FontSize: 10},
		{S: "Hello", X: 10, W: 25, FontSize: 10},
		{S: "!", X: 85, W: 3, FontSize: 12},
	}
	text, size := joinRow(runs)
	assert.Equal(t, "Hello world!", text)
	assert.Equal(t, 12.0, size)
}

func TestGroupRows(t *testing.T) {
	glyphs := []pdf.Text{
		{S: "b", X: 10, Y: 700, FontSize: 12},
		{S: "a", X: 10, Y: 720, FontSize: 12},
		{S: "c", X: 20, Y: 700.5, FontSize: 12},
	}
	rows := groupRows(glyphs)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0][0].S)
	assert.Len(t, rows[1], 2)
}

func TestInspector(t *testing.T) {
	info, err := NewInspector().Inspect(pdftest.Numbered(3))
	require.NoError(t, err)
	assert.Equal(t, 3, info.PageCount)
	require.Len(t, info.Pages, 3)
	assert.Equal(t, float64(pdftest.PageWidth), info.Pages[0].Width)
	assert.Equal(t, float64(pdftest.PageHeight), info.Pages[0].Height)

	_, err = NewInspector().Inspect([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestFitzRenderer(t *testing.T) {
	session, err := FitzRenderer{}.Open(pdftest.Numbered(2))
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, 2, session.PageCount())

	page, err := session.RenderPage(1, 72)
	require.NoError(t, err)
	assert.NotEmpty(t, page.Image)
	assert.InDelta(t, pdftest.PageWidth, page.Size.Width, 1)
	assert.InDelta(t, pdftest.PageHeight, page.Size.Height, 1)

	_, err = session.RenderPage(2, 72)
	assert.ErrorIs(t, err, convert.ErrPageOutOfRange)
}

func TestImageFallback_EndToEnd(t *testing.T) {
	conv := convert.NewImageConverter(FitzRenderer{}, func() convert.PageDocument {
		return docxbuild.NewImageDocument()
	}, 72)

	out, pages, err := conv.Convert(context.Background(), pdftest.Numbered(3), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	pics, err := docxbuild.CountPictures(out)
	require.NoError(t, err)
	assert.Equal(t, 3, pics)
}

func TestImageFallback_CorruptPDF(t *testing.T) {
	conv := convert.NewImageConverter(FitzRenderer{}, func() convert.PageDocument {
		return docxbuild.NewImageDocument()
	}, 72)

	out, _, err := conv.Convert(context.Background(), pdftest.Corrupt(), nil)
	assert.True(t, convert.IsConversion(err))
	assert.Nil(t, out)
}
