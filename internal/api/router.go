package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/roadwatch/roadwatch-api/docs"
	"github.com/roadwatch/roadwatch-api/internal/api/handler"
	"github.com/roadwatch/roadwatch-api/internal/api/middleware"
	"github.com/roadwatch/roadwatch-api/internal/core/auth"
	"github.com/roadwatch/roadwatch-api/internal/core/ports"
	"github.com/roadwatch/roadwatch-api/internal/core/service"
	mongodb "github.com/roadwatch/roadwatch-api/internal/infrastructure/db/mongo"
	redisdb "github.com/roadwatch/roadwatch-api/internal/infrastructure/db/redis"
	"github.com/roadwatch/roadwatch-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Browser client is served from another origin.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	// Report submissions embed base64 image payloads.
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echoprometheus.NewMiddleware("roadwatch"))

	// --- Dependencies ---
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	resolver := auth.NewResolver(codec)
	vault := auth.NewPasswordVault()

	accountRepo := mongodb.NewAccountRepository(db)
	reportRepo := mongodb.NewReportRepository(db)

	// No Redis means no cache; list reads go straight to MongoDB.
	var reportCache ports.ReportCache
	if rdb != nil {
		reportCache = redisdb.NewReportCache(rdb)
	}

	accountService := service.NewAccountService(accountRepo, codec, vault, cfg.AdminCode, log)
	reportService := service.NewReportService(reportRepo, reportCache, log)

	authHandler := handler.NewAuthHandler(accountService)
	reportHandler := handler.NewReportHandler(reportService)

	// --- API routes ---
	apiGroup := e.Group("/api", middleware.ResolveIdentity(resolver))

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/reports", reportHandler.List)
	apiGroup.GET("/reports/:id", reportHandler.Get)
	apiGroup.POST("/reports", reportHandler.Create)
	apiGroup.PATCH("/reports/:id/status", reportHandler.UpdateStatus)
	apiGroup.DELETE("/reports/:id", reportHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
