package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/memorial/internal/app/auth"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/auth"
)

// Context keys set by JWTAuth and Gate
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextRole      = "roleType"
	ContextClaims    = "claims"
	ContextPrincipal = "principal"
)

// TokenValidator verifies a session token and returns its claims
type TokenValidator interface {
	ValidateAndExtractClaims(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService TokenValidator
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService TokenValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
	}
}

// TokenFromRequest returns the session token from the cookie, falling back to the
// Authorization header. Raw tokens without the Bearer prefix are accepted for Swagger UI.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie
		}
	}

	header := strings.Trim(strings.TrimSpace(c.GetHeader("Authorization")), "\"'")
	if header == "" {
		return ""
	}
	if token, err := auth.ExtractBearerToken(header); err == nil {
		return token
	}
	if strings.Count(header, ".") == 2 {
		return header
	}
	return ""
}

// SetClaims stores the session on the request context
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
	c.Set(ContextPrincipal, appauth.Principal{
		UserID: claims.UserID,
		Role:   claims.Role,
		Name:   claims.Name,
	})
}

// ClaimsFrom returns the claims stored by JWTAuth or Gate
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// PrincipalFrom returns the caller identity stored by JWTAuth
func PrincipalFrom(c *gin.Context) (appauth.Principal, bool) {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return appauth.Principal{}, false
	}
	principal, ok := value.(appauth.Principal)
	return principal, ok
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c, m.cookieName)
		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Session token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			} else if errors.Is(err, apperrors.ErrInvalidFormat) {
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// RoleRequired middleware to check if user has one of the given roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		role, _ := value.(models.RoleType)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
