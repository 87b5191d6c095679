package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("incident_type", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseIncidentType(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("record_status", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRecordStatus(fl.Field().String())
			return ok
		})
	})
}

// BindJSON binds the request body into obj. On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	RegisterValidators()
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
