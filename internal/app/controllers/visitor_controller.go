package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/middleware"
)

// VisitorController records and reports site visits
type VisitorController struct {
	visitorService services.VisitorService
}

// NewVisitorController creates a new VisitorController
func NewVisitorController(visitorService services.VisitorService) *VisitorController {
	return &VisitorController{visitorService: visitorService}
}

// TrackVisitor records a visit
// @Summary Track a visit
// @Description Counts a visit from ip (defaults to the client address). Repeat visits within five minutes are not counted.
// @Tags visitors
// @Accept json
// @Produce json
// @Param request body dto.TrackVisitorRequest false "Visitor IP"
// @Success 200 {object} dto.SuccessResponse "Visit recorded"
// @Failure 400 {object} dto.ErrorResponse "IP address is required"
// @Router /track-visitor [post]
func (c *VisitorController) TrackVisitor(ctx *gin.Context) {
	var req dto.TrackVisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	ip := strings.TrimSpace(req.IP)
	if ip == "" {
		ip = ctx.ClientIP()
	}

	outcome, err := c.visitorService.Track(ctx.Request.Context(), ip)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: outcome.Message()})
}

// ListVisitors returns the visitor report
// @Summary List visitors
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VisitorListResponse} "Visitors"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Router /visitors [get]
func (c *VisitorController) ListVisitors(ctx *gin.Context) {
	report, err := c.visitorService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, ""))
}
