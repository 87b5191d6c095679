package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/middleware"
	"github.com/yigit/memorial/internal/pkg/helpers"
)

// PublicController serves the unauthenticated memorial pages
type PublicController struct {
	publicService services.PublicService
}

// NewPublicController creates a new PublicController
func NewPublicController(publicService services.PublicService) *PublicController {
	return &PublicController{publicService: publicService}
}

// ListPeople handles the public memorial listing
// @Summary Public listing
// @Description Verified records ordered by incident date. search also matches an exact age and reference titles.
// @Tags public
// @Produce json
// @Param search query string false "Free text"
// @Param age query int false "Maximum age"
// @Param occupation query string false "Occupation title contains"
// @Param institution query string false "Institution title contains"
// @Param location query string false "Incident location title contains"
// @Param gender query string false "Gender"
// @Param incidentType query string false "MARTYR or INJURED"
// @Param skip query int false "Offset" default(0)
// @Param take query int false "Page size" default(12)
// @Success 200 {object} dto.PublicListResponse "Records"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /public/lists [get]
func (c *PublicController) ListPeople(ctx *gin.Context) {
	skip, take := helpers.ParseSkipTake(ctx)
	query := services.PublicListQuery{
		Search:       ctx.Query("search"),
		Age:          ctx.Query("age"),
		Occupation:   ctx.Query("occupation"),
		Gender:       ctx.Query("gender"),
		IncidentType: ctx.Query("incidentType"),
		Location:     ctx.Query("location"),
		Institution:  ctx.Query("institution"),
		Skip:         skip,
		Take:         take,
	}

	people, total, err := c.publicService.ListPeople(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublicListResponse{Success: true, People: people, TotalCount: total})
}

// GetPerson handles the public detail page
// @Summary Public record detail
// @Tags public
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.PublicDetailResponse "Record"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /public/lists/{id} [get]
func (c *PublicController) GetPerson(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "record")
	if !ok {
		return
	}

	person, err := c.publicService.GetPerson(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublicDetailResponse{Success: true, Person: person})
}

// ListReferences serves one lookup table as filter options
// @Summary Public filter options
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ReferenceOption} "Options"
// @Router /public/occupations [get]
// @Router /public/institutions [get]
// @Router /public/incident-locations [get]
func (c *PublicController) ListReferences(kind models.ReferenceKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		options, err := c.publicService.ListReferences(ctx.Request.Context(), kind)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(options, ""))
	}
}

// TotalVisits serves the public visitor counter
// @Summary Visitor counter
// @Tags public
// @Produce json
// @Success 200 {object} dto.VisitorTotalResponse "Total visits"
// @Router /public/visitor [get]
func (c *PublicController) TotalVisits(ctx *gin.Context) {
	total, err := c.publicService.TotalVisits(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.VisitorTotalResponse{Success: true, TotalVisitCount: total})
}
