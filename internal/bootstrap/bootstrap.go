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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mkaraca/courseflow/internal/app/controllers"
	appMigrations "github.com/mkaraca/courseflow/internal/app/migrations"
	appRepos "github.com/mkaraca/courseflow/internal/app/repositories"
	appRoutes "github.com/mkaraca/courseflow/internal/app/routes"
	appServices "github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/catalog"
	"github.com/mkaraca/courseflow/internal/config"
	"github.com/mkaraca/courseflow/internal/db"
	appMiddleware "github.com/mkaraca/courseflow/internal/middleware"
	pkgAuth "github.com/mkaraca/courseflow/internal/pkg/auth"
	"github.com/mkaraca/courseflow/internal/pkg/helpers"
	"github.com/mkaraca/courseflow/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService              *appServices.AuthService
	ShareService             *appServices.ShareService
	RequirementService       *appServices.RequirementService
	ScheduleService          *appServices.ScheduleService
	AuthController           *appControllers.AuthController
	CatalogController        *appControllers.CatalogController
	RequirementController    *appControllers.RequirementController
	ScheduleController       *appControllers.ScheduleController
	ShareController          *appControllers.ShareController
	SharedScheduleController *appControllers.SharedScheduleController
	AuthMiddleware           *appMiddleware.AuthMiddleware
	ShareRateLimiter         *appMiddleware.RateLimiter
	Repos                    *appRepos.Repositories
	JWTService               *pkgAuth.JWTService
	Catalog                  *catalog.Catalog
	Logger                   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load course catalog: %w", err)
	}
	deps.Catalog = cat
	lgr.Info().Int("courses", cat.Len()).Msg("Course catalog loaded")

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)

	// The privileged repository is created here and handed only to the
	// share service. Controllers never see it.
	sharedScheduleRepo := appRepos.NewSharedScheduleRepository(dbPool)
	deps.ShareService = appServices.NewShareService(
		deps.Repos.ShareRepository,
		sharedScheduleRepo,
		cat,
		cfg.Sharing.BaseURL,
	)

	deps.RequirementService = appServices.NewRequirementService(deps.Repos.RequirementRepository, cat)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.AcademicYearRepository,
		deps.Repos.SemesterRepository,
		deps.Repos.ScheduledCourseRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.ShareRateLimiter = appMiddleware.NewRateLimiter(cfg.Sharing.RatePerMinute, cfg.Sharing.RateBurst)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(cat)
	deps.RequirementController = appControllers.NewRequirementController(deps.RequirementService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService)
	deps.ShareController = appControllers.NewShareController(deps.ShareService)
	deps.SharedScheduleController = appControllers.NewSharedScheduleController(deps.ShareService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.RequirementController,
		deps.ScheduleController,
		deps.ShareController,
		deps.SharedScheduleController,
		deps.AuthMiddleware,
		deps.ShareRateLimiter,
		deps.ShareService,
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
