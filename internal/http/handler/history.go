package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdfdocx/internal/model"
	"pdfdocx/internal/service"
)

// ListConversions returns recorded conversions with limit & offset.
//
// @Summary List recorded conversions
// @Tags history
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.ConversionListResult
// @Failure 404 {object} errorPayload
// @Router /api/conversions [get]
func ListConversions(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.History(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetConversion returns one recorded conversion.
//
// @Summary Get a recorded conversion
// @Tags history
// @Produce json
// @Param id path string true "conversion id"
// @Success 200 {object} model.ConversionRecord
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/conversions/{id} [get]
func GetConversion(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Record(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DownloadConversion streams an archived DOCX.
//
// @Summary Download an archived conversion result
// @Tags history
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param id path string true "conversion id"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/conversions/{id}/download [get]
func DownloadConversion(svc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rec, err := svc.OpenResult(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(rec.ResultFilename)
		c.Set(fiber.HeaderContentType, model.DocxContentType)
		c.Set(HeaderConversionID, rec.ID)
		size := -1
		if rec.ResultSize > 0 {
			size = int(rec.ResultSize)
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}
