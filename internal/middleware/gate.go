package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/auth"
)

// Mode selects the caching policy for public API responses
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Cache directives applied by the gate
const (
	CachePublic  = "public, s-maxage=3600, stale-while-revalidate=59"
	CacheNoStore = "no-store"
)

const apiPrefix = "/api"

// Action is what the gate does with a request
type Action int

const (
	// ActionAllow lets the request through
	ActionAllow Action = iota
	// ActionRedirect sends the caller to their own dashboard base path
	ActionRedirect
	// ActionLogin sends the caller to the login page
	ActionLogin
)

func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionLogin:
		return "login"
	default:
		return "allow"
	}
}

// Decision is the outcome of classifying one request.
// CacheControl is only set when Action is ActionAllow.
type Decision struct {
	Action       Action
	CacheControl string
	Location     string
}

// GateConfig holds the path layout the gate classifies against
type GateConfig struct {
	PublicAPIPrefix    string
	DashboardPrefix    string
	SignInCallbackPath string
	LoginPath          string
	CookieName         string
}

// DefaultGateConfig returns the standard path layout
func DefaultGateConfig() GateConfig {
	return GateConfig{
		PublicAPIPrefix:    "/api/public",
		DashboardPrefix:    "/dashboard",
		SignInCallbackPath: "/api/auth/login",
		LoginPath:          "/login",
		CookieName:         "session_token",
	}
}

var roleSegments = map[models.RoleType]string{
	models.RoleAdmin:  "admin",
	models.RoleVendor: "vendor",
	models.RoleUser:   "user",
}

// BasePath returns the dashboard path role is confined to
func (g GateConfig) BasePath(role models.RoleType) (string, bool) {
	segment, ok := roleSegments[role]
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(g.DashboardPrefix, "/") + "/" + segment, true
}

// LoginLocation is the login redirect target carrying the original path
func (g GateConfig) LoginLocation(path string) string {
	return g.LoginPath + "?callbackUrl=" + url.QueryEscape(path)
}

// underPrefix matches whole path segments, so /dashboard/administrator is not under /dashboard/admin
func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Decide classifies path. claims is nil when the request carries no valid session.
func Decide(path string, claims *auth.Claims, mode Mode, cfg GateConfig) Decision {
	switch {
	case underPrefix(path, cfg.SignInCallbackPath):
		return Decision{Action: ActionAllow, CacheControl: CacheNoStore}
	case underPrefix(path, cfg.PublicAPIPrefix):
		if mode == ModeProduction {
			return Decision{Action: ActionAllow, CacheControl: CachePublic}
		}
		return Decision{Action: ActionAllow, CacheControl: CacheNoStore}
	case underPrefix(path, apiPrefix):
		return Decision{Action: ActionAllow, CacheControl: CacheNoStore}
	case underPrefix(path, cfg.DashboardPrefix):
		return decideDashboard(path, claims, cfg)
	}
	return Decision{Action: ActionAllow}
}

func decideDashboard(path string, claims *auth.Claims, cfg GateConfig) Decision {
	if claims == nil {
		return Decision{Action: ActionLogin, Location: cfg.LoginLocation(path)}
	}
	base, ok := cfg.BasePath(claims.Role)
	if !ok {
		return Decision{Action: ActionLogin, Location: cfg.LoginLocation(path)}
	}
	if !underPrefix(path, base) {
		return Decision{Action: ActionRedirect, Location: base}
	}
	return Decision{Action: ActionAllow}
}

// Gate applies Decide to every request. An invalid token is treated as no token.
func Gate(jwt TokenValidator, cfg GateConfig, mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims *auth.Claims
		if token := TokenFromRequest(c, cfg.CookieName); token != "" {
			if parsed, err := jwt.ValidateAndExtractClaims(token); err == nil {
				claims = parsed
			}
		}

		decision := Decide(c.Request.URL.Path, claims, mode, cfg)
		switch decision.Action {
		case ActionLogin, ActionRedirect:
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}

		if decision.CacheControl != "" {
			c.Header("Cache-Control", decision.CacheControl)
		}
		if claims != nil {
			SetClaims(c, claims)
		}
		c.Next()
	}
}
