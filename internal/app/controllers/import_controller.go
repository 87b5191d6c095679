package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

// multipartMemory is how much of an upload is held in memory before spilling to disk
const multipartMemory = 8 << 20

// ImportController handles CSV bulk imports
type ImportController struct {
	importService  services.ImportService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewImportController creates a new ImportController
func NewImportController(importService services.ImportService, maxUploadBytes int64, logger zerolog.Logger) *ImportController {
	return &ImportController{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func importFailure(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, dto.ImportResponse{Success: false, Error: message})
}

// ImportPeople loads records from an uploaded CSV file
// @Summary Bulk import people records
// @Description Streams a CSV file (first row headers) into the people table in batches of 1000. Rows whose NID already exists are skipped. Batches written before a failure stay written.
// @Tags people
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param submitted_by_id formData int true "Submitter user ID"
// @Success 200 {object} dto.ImportResponse "Import finished"
// @Failure 400 {object} dto.ImportResponse "Missing file or submitter"
// @Failure 413 {object} dto.ImportResponse "File or row count over the limit"
// @Failure 500 {object} dto.ImportResponse "Parse or store failure"
// @Router /people/import [post]
func (c *ImportController) ImportPeople(ctx *gin.Context) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	}

	if err := ctx.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			importFailure(ctx, http.StatusRequestEntityTooLarge, "Upload exceeds "+strconv.FormatInt(maxBytes.Limit, 10)+" bytes")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) && !errors.Is(err, http.ErrMissingBoundary) {
			c.logger.Warn().Err(err).Msg("Failed to parse import upload")
		}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		importFailure(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	rawSubmitter, present := ctx.GetPostForm("submitted_by_id")
	rawSubmitter = strings.TrimSpace(rawSubmitter)
	if !present || rawSubmitter == "" {
		importFailure(ctx, http.StatusBadRequest, "Missing submitted_by_id")
		return
	}
	submitterID, err := strconv.ParseInt(rawSubmitter, 10, 64)
	if err != nil {
		importFailure(ctx, http.StatusBadRequest, "Invalid submitted_by_id")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded import file")
		importFailure(ctx, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := c.importService.Import(ctx.Request.Context(), file, submitterID)
	if err != nil {
		entry := c.logger.Error().Err(err).Str("file", fileHeader.Filename)
		if result != nil {
			entry = entry.Int("rowsRead", result.RowsRead).Int64("rowsInserted", result.RowsInserted)
		}
		entry.Msg("Import failed")

		if errors.Is(err, apperrors.ErrImportTooLarge) {
			importFailure(ctx, http.StatusRequestEntityTooLarge, apperrors.MessageOf(err, "Import too large"))
			return
		}
		importFailure(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	c.logger.Info().
		Str("file", fileHeader.Filename).
		Int64("submittedBy", submitterID).
		Int("rowsRead", result.RowsRead).
		Int64("rowsInserted", result.RowsInserted).
		Str("checksum", result.Checksum).
		Msg("Import finished")

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Success:      true,
		RowsRead:     &result.RowsRead,
		RowsInserted: &result.RowsInserted,
		Checksum:     result.Checksum,
	})
}
