package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/middleware"
)

// DashboardController describes the session behind a dashboard route.
// The gate has already confined the caller to their role's base path.
type DashboardController struct {
	gate middleware.GateConfig
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(gate middleware.GateConfig) *DashboardController {
	return &DashboardController{gate: gate}
}

// Context returns the dashboard context for the session
// @Summary Dashboard context
// @Tags dashboard
// @Produce json
// @Param path path string true "Dashboard path"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardContextResponse} "Session context"
// @Success 302 {string} string "Redirect to login or to the role's base path"
// @Router /dashboard/{path} [get]
func (c *DashboardController) Context(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, c.gate.LoginLocation(ctx.Request.URL.Path))
		return
	}
	basePath, ok := c.gate.BasePath(claims.Role)
	if !ok {
		ctx.Redirect(http.StatusFound, c.gate.LoginLocation(ctx.Request.URL.Path))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardContextResponse{
		Role:     claims.Role,
		Name:     claims.Name,
		BasePath: basePath,
		Path:     ctx.Request.URL.Path,
	}, ""))
}
