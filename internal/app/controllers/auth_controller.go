// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/middleware"
)

// SessionCookie configures the cookie carrying the session token
type SessionCookie struct {
	Name   string
	Secure bool
	// MaxAge overrides the token lifetime as the cookie lifetime when set
	MaxAge time.Duration
}

// AuthController handles sign-in and session operations
type AuthController struct {
	authService Authenticator
	cookie      SessionCookie
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService Authenticator, cookie SessionCookie, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (c *AuthController) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, value, maxAge, "/", "", c.cookie.Secure, true)
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user, sets the HttpOnly session cookie and returns the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(resp.Token.ExpiresIn)
	if c.cookie.MaxAge > 0 {
		maxAge = int(c.cookie.MaxAge.Seconds())
	}
	c.setCookie(ctx, resp.Token.AccessToken, maxAge)
	c.logger.Info().Int64("userID", resp.User.ID).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Login successful"))
}

// Logout clears the session cookie
// @Summary User logout
// @Description Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Logged out"})
}

// Session returns the claims of the current session
// @Summary Current session
// @Description Returns the identity carried by the session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Current session"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, ""))
}
