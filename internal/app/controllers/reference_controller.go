package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/middleware"
)

// ReferenceController manages occupations, institutions and incident locations.
// Each handler is bound to one kind when the routes are registered.
type ReferenceController struct {
	referenceService services.ReferenceService
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(referenceService services.ReferenceService) *ReferenceController {
	return &ReferenceController{referenceService: referenceService}
}

// List returns every item of kind
// @Summary List reference items
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ReferenceItem} "Items"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /occupations [get]
// @Router /institutions [get]
// @Router /incident-locations [get]
func (c *ReferenceController) List(kind models.ReferenceKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		items, err := c.referenceService.List(ctx.Request.Context(), kind)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(items, ""))
	}
}

// Create adds an item to kind
// @Summary Create a reference item
// @Tags reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReferenceRequest true "Title"
// @Success 201 {object} dto.APIResponse{data=models.ReferenceItem} "Item created"
// @Failure 400 {object} dto.ErrorResponse "Invalid title"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Title already exists"
// @Router /occupations [post]
// @Router /institutions [post]
// @Router /incident-locations [post]
func (c *ReferenceController) Create(kind models.ReferenceKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req dto.CreateReferenceRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}
		principal, _ := middleware.PrincipalFrom(ctx)

		item, err := c.referenceService.Create(ctx.Request.Context(), principal, kind, req.Title)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, dto.NewAPIResponse(item, "Created successfully"))
	}
}

// Update renames an item of kind
// @Summary Rename a reference item
// @Tags reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateReferenceRequest true "ID and new title"
// @Success 200 {object} dto.APIResponse{data=models.ReferenceItem} "Item updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Title already exists"
// @Router /occupations [put]
// @Router /institutions [put]
// @Router /incident-locations [put]
func (c *ReferenceController) Update(kind models.ReferenceKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req dto.UpdateReferenceRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}
		principal, _ := middleware.PrincipalFrom(ctx)

		item, err := c.referenceService.Update(ctx.Request.Context(), principal, kind, req.ID, req.Title)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(item, "Updated successfully"))
	}
}

// Delete removes an item of kind
// @Summary Delete a reference item
// @Tags reference
// @Produce json
// @Security BearerAuth
// @Param id query int true "Item ID"
// @Success 200 {object} dto.SuccessResponse "Item deleted"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid id"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Item still referenced by people records"
// @Router /occupations [delete]
// @Router /institutions [delete]
// @Router /incident-locations [delete]
func (c *ReferenceController) Delete(kind models.ReferenceKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := ctx.Query("id")
		if raw == "" {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "ID is required").WithField("id")))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "ID must be a positive number").WithField("id")))
			return
		}
		principal, _ := middleware.PrincipalFrom(ctx)

		if err := c.referenceService.Delete(ctx.Request.Context(), principal, kind, id); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Deleted successfully"})
	}
}
