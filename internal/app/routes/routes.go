package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/controllers"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Person    *controllers.PersonController
	Import    *controllers.ImportController
	Public    *controllers.PublicController
	Reference *controllers.ReferenceController
	Visitor   *controllers.VisitorController
	Upload    *controllers.UploadController
	Dashboard *controllers.DashboardController
}

// referenceRoutes maps each lookup collection onto its URL segment
var referenceRoutes = []struct {
	path string
	kind models.ReferenceKind
}{
	{"/occupations", models.ReferenceOccupation},
	{"/institutions", models.ReferenceInstitution},
	{"/incident-locations", models.ReferenceIncidentLocation},
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	public := api.Group("/public")
	{
		public.GET("/lists", c.Public.ListPeople)
		public.GET("/lists/:id", c.Public.GetPerson)
		for _, ref := range referenceRoutes {
			public.GET(ref.path, c.Public.ListReferences(ref.kind))
		}
		public.GET("/visitor", c.Public.TotalVisits)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/session", authMiddleware.JWTAuth(), c.Auth.Session)
	}

	api.POST("/users/register", c.User.Register)
	api.POST("/track-visitor", c.Visitor.TrackVisitor)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	{
		authenticated.GET("/users/me", c.User.GetProfile)
		authenticated.POST("/upload", c.Upload.Upload)
		authenticated.GET("/visitors", adminOnly, c.Visitor.ListVisitors)

		people := authenticated.Group("/people")
		{
			people.POST("", c.Person.CreatePerson)
			people.GET("/mine", c.Person.ListMine)
			people.GET("/:id", c.Person.GetPerson)

			people.GET("", adminOnly, c.Person.ListPeople)
			people.GET("/stats", adminOnly, c.Person.GetStats)
			people.POST("/import", authMiddleware.RoleRequired(models.RoleAdmin, models.RoleVendor), c.Import.ImportPeople)
			people.PATCH("/:id", adminOnly, c.Person.UpdatePerson)
			people.PATCH("/:id/verify", adminOnly, c.Person.VerifyPerson)
			people.DELETE("/:id", adminOnly, c.Person.DeletePerson)
		}

		for _, ref := range referenceRoutes {
			group := authenticated.Group(ref.path)
			group.GET("", c.Reference.List(ref.kind))
			group.POST("", adminOnly, c.Reference.Create(ref.kind))
			group.PUT("", adminOnly, c.Reference.Update(ref.kind))
			group.DELETE("", adminOnly, c.Reference.Delete(ref.kind))
		}
	}

	// Role confinement for the dashboard is enforced by the gate
	router.GET("/dashboard", c.Dashboard.Context)
	router.GET("/dashboard/*path", c.Dashboard.Context)
}
