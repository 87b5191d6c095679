package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/memorial/internal/app/controllers"
	appMigrations "github.com/yigit/memorial/internal/app/migrations"
	appRepos "github.com/yigit/memorial/internal/app/repositories"
	appRoutes "github.com/yigit/memorial/internal/app/routes"
	appServices "github.com/yigit/memorial/internal/app/services"
	"github.com/yigit/memorial/internal/config"
	"github.com/yigit/memorial/internal/db"
	appMiddleware "github.com/yigit/memorial/internal/middleware"
	pkgAuth "github.com/yigit/memorial/internal/pkg/auth"
	"github.com/yigit/memorial/internal/pkg/filestorage"
	"github.com/yigit/memorial/internal/pkg/geo"
	"github.com/yigit/memorial/internal/pkg/helpers"
	"github.com/yigit/memorial/internal/pkg/logger"
	"github.com/yigit/memorial/internal/seed"
)

// UploadsURLPath is where locally stored uploads are served from
const UploadsURLPath = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      *appServices.AuthService
	PersonService    appServices.PersonService
	ImportService    appServices.ImportService
	PublicService    appServices.PublicService
	ReferenceService appServices.ReferenceService
	VisitorService   appServices.VisitorService
	UploadService    appServices.UploadService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Gate           appMiddleware.GateConfig
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger

	FileStorage filestorage.ObjectStorage
	// LocalStorage is set when uploads live on disk and must be served by this process
	LocalStorage *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "memorial",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Str("mode", cfg.Server.Mode).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, database.Pool, cfg.Seed.DemoPassword, lgr); err != nil {
			// Startup continues with whatever was seeded
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// NewFileStorage picks S3 when a bucket is configured and the local disk otherwise.
// The second result is non-nil only for local storage.
func NewFileStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (filestorage.ObjectStorage, *filestorage.LocalStorage, error) {
	if cfg.Storage.S3Bucket != "" {
		s3Cfg := filestorage.S3Config{
			Bucket:        cfg.Storage.S3Bucket,
			Region:        cfg.Storage.S3Region,
			Endpoint:      cfg.Storage.S3Endpoint,
			PublicBaseURL: cfg.Storage.S3PublicBaseURL,
		}
		client, err := filestorage.NewS3Client(ctx, s3Cfg)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info().Str("bucket", s3Cfg.Bucket).Str("region", s3Cfg.Region).Msg("Using S3 file storage")
		return filestorage.NewS3Storage(client, s3Cfg), nil, nil
	}

	baseURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	local, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+UploadsURLPath)
	if err != nil {
		return nil, nil, err
	}
	lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Using local file storage")
	return local, local, nil
}

// GateConfig maps the configured prefixes onto the middleware configuration
func GateConfig(cfg *config.Config) appMiddleware.GateConfig {
	return appMiddleware.GateConfig{
		PublicAPIPrefix:    cfg.Gate.PublicAPIPrefix,
		DashboardPrefix:    cfg.Gate.DashboardPrefix,
		SignInCallbackPath: cfg.Gate.SignInCallbackPath,
		LoginPath:          cfg.Gate.LoginPath,
		CookieName:         cfg.JWT.CookieName,
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, conn db.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Gate: GateConfig(cfg)}

	deps.Repos = appRepos.NewRepositories(conn)

	var err error
	deps.FileStorage, deps.LocalStorage, err = NewFileStorage(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	geoClient := geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.Token, helpers.ParseDuration(cfg.Geo.Timeout, 3*time.Second))

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.PersonService = appServices.NewPersonService(deps.Repos.PersonRepository, lgr)
	deps.ImportService = appServices.NewImportService(deps.Repos.PersonRepository, appServices.ImportOptions{
		BatchSize: cfg.Import.BatchSize,
		MaxRows:   cfg.Import.MaxRows,
	}, lgr)
	deps.ReferenceService = appServices.NewReferenceService(lgr,
		deps.Repos.OccupationRepository,
		deps.Repos.InstitutionRepository,
		deps.Repos.IncidentLocationRepository,
	)
	deps.VisitorService = appServices.NewVisitorService(deps.Repos.VisitorRepository, geoClient, lgr)
	deps.PublicService = appServices.NewPublicService(deps.Repos.PersonRepository, deps.ReferenceService, deps.Repos.VisitorRepository)
	deps.UploadService = appServices.NewUploadService(deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Gate.CookieName)

	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(deps.AuthService, appControllers.SessionCookie{
			Name:   deps.Gate.CookieName,
			Secure: cfg.IsProduction(),
			MaxAge: deps.JWTService.TokenLifetime(),
		}, lgr),
		User:      appControllers.NewUserController(deps.AuthService, lgr),
		Person:    appControllers.NewPersonController(deps.PersonService, lgr),
		Import:    appControllers.NewImportController(deps.ImportService, cfg.Import.MaxUploadBytes, lgr),
		Public:    appControllers.NewPublicController(deps.PublicService),
		Reference: appControllers.NewReferenceController(deps.ReferenceService),
		Visitor:   appControllers.NewVisitorController(deps.VisitorService),
		Upload:    appControllers.NewUploadController(deps.UploadService, lgr),
		Dashboard: appControllers.NewDashboardController(deps.Gate),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	mode := appMiddleware.ModeDevelopment
	if cfg.IsProduction() {
		mode = appMiddleware.ModeProduction
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidators()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Gate(deps.JWTService, deps.Gate, mode),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	if deps.LocalStorage != nil {
		router.Static(UploadsURLPath, deps.LocalStorage.BasePath())
		lgr.Info().Str("path", deps.LocalStorage.BasePath()).Msg("Static file serving configured for uploads directory")
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
