package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/model"
	"pdfdocx/internal/service"
)

// Response headers set on a converted document.
const (
	HeaderConversionID = "X-Conversion-ID"
	HeaderPageCount    = "X-Page-Count"
	HeaderDownloadURL  = "X-Download-URL"
)

var errFileRequired = errors.New("file is required")

// readUpload loads the multipart "file" field into memory.
func readUpload(c *fiber.Ctx) (model.UploadedDocument, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return model.UploadedDocument{}, errFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return model.UploadedDocument{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.UploadedDocument{}, err
	}
	return model.UploadedDocument{Filename: fh.Filename, Data: data}, nil
}

func writeUploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errFileRequired) {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
}

// ConvertDocument converts an uploaded PDF and returns the DOCX as an attachment.
//
// @Summary Convert a PDF to DOCX
// @Tags conversions
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param file formData file true "PDF document"
// @Param mode formData string false "text or image (default text)"
// @Param pages formData string false "page range such as 2-4 (default all pages)"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 504 {object} errorPayload
// @Router /api/convert [post]
func ConvertDocument(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := readUpload(c)
		if err != nil {
			return writeUploadError(c, err)
		}

		mode, err := convert.ParseMode(c.FormValue("mode"))
		if err != nil {
			return writeServiceError(c, err)
		}
		pages, err := convert.ParsePageRange(c.FormValue("pages"))
		if err != nil {
			return writeServiceError(c, err)
		}

		res, err := svc.Convert(c.UserContext(), doc, model.ConversionRequest{Mode: mode, Pages: pages})
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(res.Filename)
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(HeaderConversionID, res.ID)
		c.Set(HeaderPageCount, strconv.Itoa(res.PageCount))
		if res.DownloadURL != "" {
			c.Set(HeaderDownloadURL, res.DownloadURL)
		}
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// InspectDocument reports the page count and page sizes of an uploaded PDF.
//
// @Summary Inspect a PDF
// @Tags conversions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} model.DocumentInfo
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/inspect [post]
func InspectDocument(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := readUpload(c)
		if err != nil {
			return writeUploadError(c, err)
		}
		info, err := svc.Inspect(c.UserContext(), doc.Data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(info)
	}
}

type modeOption struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

func modeOptions() []modeOption {
	out := make([]modeOption, 0, len(model.Modes))
	for _, m := range model.Modes {
		out = append(out, modeOption{Key: string(m), Label: m.Label(), Default: m == model.ModeTextPreserving})
	}
	return out
}

// ListModes returns the available conversion modes.
//
// @Summary List conversion modes
// @Tags conversions
// @Produce json
// @Success 200 {array} modeOption
// @Router /api/modes [get]
func ListModes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(modeOptions())
	}
}
