package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/middleware"
	"github.com/yigit/memorial/internal/pkg/helpers"
)

// PersonController handles the moderated people records
type PersonController struct {
	personService services.PersonService
	logger        zerolog.Logger
}

// NewPersonController creates a new PersonController
func NewPersonController(personService services.PersonService, logger zerolog.Logger) *PersonController {
	return &PersonController{
		personService: personService,
		logger:        logger,
	}
}

// parseID reads a positive int64 path parameter, writing a 400 when it is not one
func parseID(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreatePerson handles record submission
// @Summary Submit a person record
// @Description Creates a record submitted by the caller. Records from non-admins always start PENDING.
// @Tags people
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePersonRequest true "Record"
// @Success 201 {object} dto.APIResponse{data=models.PersonDetail} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "NID already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /people [post]
func (c *PersonController) CreatePerson(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	principal, _ := middleware.PrincipalFrom(ctx)

	person, err := c.personService.CreatePerson(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(person, "Record created successfully"))
}

// ListPeople handles the admin listing
// @Summary List people records
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Name or NID contains"
// @Param status query string false "PENDING or VERIFIED"
// @Param incidentType query string false "DEATH or INJURED"
// @Success 200 {object} dto.APIResponse{data=[]models.PersonDetail} "Records"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Router /people [get]
func (c *PersonController) ListPeople(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.PersonFilter{
		Search: strings.TrimSpace(ctx.Query("search")),
		Offset: offset,
		Limit:  limit,
	}
	if raw := ctx.Query("status"); raw != "" {
		status, ok := models.ParseRecordStatus(raw)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status").WithField("status")))
			return
		}
		filter.Status = status
	}
	if raw := ctx.Query("incidentType"); raw != "" {
		incidentType, ok := models.ParseIncidentType(raw)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid incident type").WithField("incidentType")))
			return
		}
		filter.IncidentType = incidentType
	}

	principal, _ := middleware.PrincipalFrom(ctx)
	people, total, err := c.personService.ListPeople(ctx.Request.Context(), principal, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(people, helpers.NewPaginationInfo(total, page, size)))
}

// ListMine handles the caller's own submissions
// @Summary List my submissions
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.PersonDetail} "Records"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /people/mine [get]
func (c *PersonController) ListMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	principal, _ := middleware.PrincipalFrom(ctx)

	people, total, err := c.personService.ListMine(ctx.Request.Context(), principal, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(people, helpers.NewPaginationInfo(total, page, size)))
}

// GetPerson returns one full record
// @Summary Get a person record
// @Description Admins can read any record; other roles only their own submissions
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.PersonDetail} "Record"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /people/{id} [get]
func (c *PersonController) GetPerson(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "record")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(ctx)

	person, err := c.personService.GetPerson(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(person, ""))
}

// UpdatePerson replaces every editable field of a record
// @Summary Update a person record
// @Tags people
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body dto.UpdatePersonRequest true "Record"
// @Success 200 {object} dto.APIResponse{data=models.PersonDetail} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /people/{id} [patch]
func (c *PersonController) UpdatePerson(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "record")
	if !ok {
		return
	}
	var req dto.UpdatePersonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	principal, _ := middleware.PrincipalFrom(ctx)

	person, err := c.personService.UpdatePerson(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(person, "Record updated successfully"))
}

// VerifyPerson moves a record from PENDING to VERIFIED
// @Summary Verify a person record
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.PersonDetail} "Record verified"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 409 {object} dto.ErrorResponse "Record already verified"
// @Router /people/{id}/verify [patch]
func (c *PersonController) VerifyPerson(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "record")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(ctx)

	person, err := c.personService.VerifyPerson(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("personID", id).Int64("verifiedBy", principal.UserID).Msg("Record verified")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(person, "Record verified successfully"))
}

// DeletePerson removes a record
// @Summary Delete a person record
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.SuccessResponse "Record deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /people/{id} [delete]
func (c *PersonController) DeletePerson(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "record")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(ctx)

	if err := c.personService.DeletePerson(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Record deleted successfully"})
}

// GetStats returns the dashboard counters
// @Summary Dashboard counters
// @Tags people
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.PersonStats} "Counters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Router /people/stats [get]
func (c *PersonController) GetStats(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)

	stats, err := c.personService.GetStats(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}
