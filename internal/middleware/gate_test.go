package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/auth"
)

func claimsFor(role models.RoleType) *auth.Claims {
	return &auth.Claims{UserID: 1, Name: "Tester", Role: role}
}

func TestDecide(t *testing.T) {
	cfg := DefaultGateConfig()

	tests := []struct {
		name   string
		path   string
		claims *auth.Claims
		mode   Mode
		want   Decision
	}{
		{
			name: "public api cached in production",
			path: "/api/public/lists", mode: ModeProduction,
			want: Decision{Action: ActionAllow, CacheControl: CachePublic},
		},
		{
			name: "public api not cached in development",
			path: "/api/public/lists", mode: ModeDevelopment,
			want: Decision{Action: ActionAllow, CacheControl: CacheNoStore},
		},
		{
			name: "private api in production",
			path: "/api/people", mode: ModeProduction,
			want: Decision{Action: ActionAllow, CacheControl: CacheNoStore},
		},
		{
			name: "private api in development",
			path: "/api/people", mode: ModeDevelopment,
			want: Decision{Action: ActionAllow, CacheControl: CacheNoStore},
		},
		{
			name: "sign-in callback never cached",
			path: "/api/auth/login", mode: ModeProduction,
			want: Decision{Action: ActionAllow, CacheControl: CacheNoStore},
		},
		{
			name: "dashboard without session",
			path: "/dashboard/admin", mode: ModeProduction,
			want: Decision{Action: ActionLogin, Location: "/login?callbackUrl=%2Fdashboard%2Fadmin"},
		},
		{
			name: "admin on user dashboard", claims: claimsFor(models.RoleAdmin),
			path: "/dashboard/user", mode: ModeProduction,
			want: Decision{Action: ActionRedirect, Location: "/dashboard/admin"},
		},
		{
			name: "admin below own base path", claims: claimsFor(models.RoleAdmin),
			path: "/dashboard/admin/x", mode: ModeProduction,
			want: Decision{Action: ActionAllow},
		},
		{
			name: "vendor on dashboard root", claims: claimsFor(models.RoleVendor),
			path: "/dashboard", mode: ModeDevelopment,
			want: Decision{Action: ActionRedirect, Location: "/dashboard/vendor"},
		},
		{
			name: "prefix match is segment aware", claims: claimsFor(models.RoleAdmin),
			path: "/dashboard/administrator", mode: ModeProduction,
			want: Decision{Action: ActionRedirect, Location: "/dashboard/admin"},
		},
		{
			name: "unknown role goes to login", claims: claimsFor(models.RoleType("GUEST")),
			path: "/dashboard/user", mode: ModeProduction,
			want: Decision{Action: ActionLogin, Location: "/login?callbackUrl=%2Fdashboard%2Fuser"},
		},
		{
			name: "other paths pass through",
			path: "/swagger/index.html", mode: ModeProduction,
			want: Decision{Action: ActionAllow},
		},
		{
			name: "apis lookalike is not api",
			path: "/apis", mode: ModeProduction,
			want: Decision{Action: ActionAllow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.path, tt.claims, tt.mode, cfg)
			assert.Equal(t, tt.want, got)
			if got.Action != ActionAllow {
				assert.Empty(t, got.CacheControl)
			}
		})
	}
}

func TestDecide_CustomCallbackUnderPublicPrefix(t *testing.T) {
	cfg := DefaultGateConfig()
	cfg.SignInCallbackPath = "/api/public/auth/callback"

	got := Decide("/api/public/auth/callback", nil, ModeProduction, cfg)
	assert.Equal(t, CacheNoStore, got.CacheControl)
}

func newGateRouter(t *testing.T, jwt *auth.JWTService, mode Mode) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Gate(jwt, DefaultGateConfig(), mode))

	ok := func(c *gin.Context) {
		role := ""
		if claims, found := ClaimsFrom(c); found {
			role = string(claims.Role)
		}
		c.String(http.StatusOK, role)
	}
	router.GET("/api/public/lists", ok)
	router.GET("/api/people", ok)
	router.GET("/dashboard/*path", ok)
	return router
}

func TestGateMiddleware(t *testing.T) {
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "gate-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	token, _, err := jwt.GenerateAccessToken(&models.User{ID: 3, Email: "a@example.com", Name: "Admin", RoleType: models.RoleAdmin})
	require.NoError(t, err)

	router := newGateRouter(t, jwt, ModeProduction)

	t.Run("public cache header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/lists", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, CachePublic, w.Header().Get("Cache-Control"))
	})

	t.Run("private api no-store", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/people", nil))
		assert.Equal(t, CacheNoStore, w.Header().Get("Cache-Control"))
	})

	t.Run("dashboard login redirect", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Fadmin", w.Header().Get("Location"))
	})

	t.Run("invalid token is treated as absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/login")
	})

	t.Run("cookie session redirected to own base", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/user/profile", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard/admin", w.Header().Get("Location"))
	})

	t.Run("bearer session allowed on own base", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/admin/people", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ADMIN", w.Body.String())
	})
}
