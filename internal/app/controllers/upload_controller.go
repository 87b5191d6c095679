package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/middleware"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

// UploadController stores profile pictures and gallery images
type UploadController struct {
	uploadService services.UploadService
	logger        zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService, logger zerolog.Logger) *UploadController {
	return &UploadController{
		uploadService: uploadService,
		logger:        logger,
	}
}

func toUploadFile(header *multipart.FileHeader) services.UploadFile {
	return services.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// Upload stores the submitted media files
// @Summary Upload media
// @Description Stores profile_picture under profile_pictures/ and every gallery file under gallery/. Taken names get a random 8 character prefix.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profile_picture formData file false "Profile picture"
// @Param gallery formData file false "Gallery images (repeatable)"
// @Success 200 {object} dto.UploadResponse "Stored keys"
// @Failure 400 {object} dto.ErrorResponse "Invalid upload"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var maxBytes *http.MaxBytesError
		if !errors.As(err, &maxBytes) {
			err = apperrors.NewBadRequestError("a multipart form is required")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.UploadResponse{Success: true, GalleryNames: []string{}}

	if headers := form.File["profile_picture"]; len(headers) > 0 {
		key, err := c.uploadService.Store(ctx.Request.Context(), services.ProfilePictureFolder, toUploadFile(headers[0]))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		resp.ProfileName = &key
	}

	for _, header := range form.File["gallery"] {
		key, err := c.uploadService.Store(ctx.Request.Context(), services.GalleryFolder, toUploadFile(header))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		resp.GalleryNames = append(resp.GalleryNames, key)
	}

	c.logger.Info().
		Bool("profilePicture", resp.ProfileName != nil).
		Int("galleryFiles", len(resp.GalleryNames)).
		Msg("Media uploaded")
	ctx.JSON(http.StatusOK, resp)
}
