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
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/courserank/backend/docs" // Import generated swagger docs
	appControllers "github.com/courserank/backend/internal/app/controllers"
	appMigrations "github.com/courserank/backend/internal/app/migrations"
	appRepos "github.com/courserank/backend/internal/app/repositories"
	appRoutes "github.com/courserank/backend/internal/app/routes"
	appServices "github.com/courserank/backend/internal/app/services"
	"github.com/courserank/backend/internal/config"
	"github.com/courserank/backend/internal/db"
	appMiddleware "github.com/courserank/backend/internal/middleware"
	pkgAuth "github.com/courserank/backend/internal/pkg/auth"
	"github.com/courserank/backend/internal/pkg/helpers"
	"github.com/courserank/backend/internal/pkg/logger"
	"github.com/courserank/backend/internal/pkg/randutil"
	"github.com/courserank/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CourseService        *appServices.CourseService
	UserCourseService    *appServices.UserCourseService
	ComparisonService    *appServices.ComparisonService
	PairService          *appServices.PairService
	RankingService       *appServices.RankingService
	SuggestionService    *appServices.SuggestionService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	UserController       *appControllers.UserController
	ComparisonController *appControllers.ComparisonController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

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

	// Seed sample catalog data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Shared randomness for pair sampling and suggestion shuffling. The
	// locked source keeps the draws safe across concurrent request handlers.
	rng := randutil.NewLockedRand(time.Now().UnixNano())

	elo := appServices.NewEloService()

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CatalogRepository, deps.Repos.RatingRepository)
	deps.UserCourseService = appServices.NewUserCourseService(deps.Repos.UserCourseRepository, deps.Repos.CatalogRepository)
	deps.ComparisonService = appServices.NewComparisonService(
		deps.Repos.ComparisonRepository,
		deps.Repos.RatingRepository,
		deps.Repos.CatalogRepository,
		elo,
	)
	deps.PairService = appServices.NewPairService(
		deps.Repos.UserCourseRepository,
		deps.Repos.ComparisonRepository,
		deps.Repos.RatingRepository,
		deps.Repos.CatalogRepository,
		elo,
		rng,
	)
	deps.RankingService = appServices.NewRankingService(
		deps.Repos.UserCourseRepository,
		deps.Repos.ComparisonRepository,
		deps.Repos.RatingRepository,
		deps.Repos.CatalogRepository,
	)
	deps.SuggestionService = appServices.NewSuggestionService(deps.Repos.CatalogRepository, rng)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.Logger)
	deps.UserController = appControllers.NewUserController(
		deps.AuthService,
		deps.UserCourseService,
		deps.RankingService,
		deps.SuggestionService,
		deps.Logger,
	)
	deps.ComparisonController = appControllers.NewComparisonController(
		deps.ComparisonService,
		deps.PairService,
		deps.Logger,
	)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.UserController,
		deps.ComparisonController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
