package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	_ "github.com/yamada-labo/prospectline/docs" // swagger docs

	"github.com/yamada-labo/prospectline/internal/config"
	"github.com/yamada-labo/prospectline/internal/platform/auth"
	httpPlatform "github.com/yamada-labo/prospectline/internal/platform/http"
	"github.com/yamada-labo/prospectline/internal/platform/logger"
	"github.com/yamada-labo/prospectline/internal/platform/postgres"
	"github.com/yamada-labo/prospectline/internal/platform/redis"
	"github.com/yamada-labo/prospectline/internal/platform/sentry"
	"github.com/yamada-labo/prospectline/internal/platform/storage"

	anthropicClient "github.com/yamada-labo/prospectline/modules/cleanser/client"
	cleanserPorts "github.com/yamada-labo/prospectline/modules/cleanser/ports"
	cleanserService "github.com/yamada-labo/prospectline/modules/cleanser/service"

	collaboratorClient "github.com/yamada-labo/prospectline/modules/collaborator/client"
	collaboratorPorts "github.com/yamada-labo/prospectline/modules/collaborator/ports"
	collaboratorService "github.com/yamada-labo/prospectline/modules/collaborator/service"

	jobHandler "github.com/yamada-labo/prospectline/modules/jobs/handler"
	jobRepo "github.com/yamada-labo/prospectline/modules/jobs/repository"
	jobService "github.com/yamada-labo/prospectline/modules/jobs/service"

	"github.com/yamada-labo/prospectline/modules/pipeline"

	runsHandler "github.com/yamada-labo/prospectline/modules/runs/handler"
	runsRepo "github.com/yamada-labo/prospectline/modules/runs/repository"
	runsService "github.com/yamada-labo/prospectline/modules/runs/service"

	"github.com/yamada-labo/prospectline/modules/scraper/render"
	scraperPorts "github.com/yamada-labo/prospectline/modules/scraper/ports"
	scraperService "github.com/yamada-labo/prospectline/modules/scraper/service"

	"github.com/yamada-labo/prospectline/modules/search/provider"
	searchService "github.com/yamada-labo/prospectline/modules/search/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Prospect List Builder API
// @version 1.0
// @description Accepts a free-form keyword, runs a search/cleanse/scrape pipeline, and delivers a deduplicated, contact-enriched prospect list.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@prospectline.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the job's access token.

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if err := sentry.Init(cfg.Sentry, cfg.Server.Env); err != nil {
		appLogger.Warn("Failed to initialize Sentry, continuing without crash reporting", zap.Error(err))
	}
	defer sentry.Flush(2 * time.Second)

	appLogger.Info("Starting prospect list builder API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	appLogger.Info("Connected to PostgreSQL")

	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, appLogger, migrationsPath); err != nil {
		appLogger.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis")

	var s3Client *storage.S3Client
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err = storage.NewS3Client(cfg.S3)
		if err != nil {
			appLogger.Warn("Failed to initialize S3 client, artifact mirroring will be disabled", zap.Error(err))
		} else {
			appLogger.Info("S3 client initialized", zap.String("bucket", cfg.S3.Bucket))
		}
	} else {
		appLogger.Info("S3 configuration not provided, artifact mirroring will be disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentry.Middleware())
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(appLogger))
	router.Use(httpPlatform.CORSMiddleware())

	if cfg.Server.Env != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		appLogger.Info("Swagger UI available at /swagger/index.html")
	}

	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))
	router.GET("/ping", pingHandler)

	// Job access tokens: minted at search time, required to poll status/result.
	jobTokenMgr := auth.NewJobTokenManager(cfg.JWT.JobTokenSecret, cfg.JWT.JobTokenExpiry)
	jobTokenMiddleware := auth.JobTokenMiddleware(jobTokenMgr)

	// C2 search: Serper-backed organic web search, paged and deduplicated
	// by the aggregator.
	serperClient := provider.NewSerperClient(cfg.Serper.APIKey, cfg.Serper.ResultsPerQuery)
	aggregator := searchService.NewAggregator(serperClient, appLogger.Logger)

	// C3 cleansing: Claude classifies and rewrites candidates in batches.
	// The credential is optional: with no key configured, chatCompleter stays
	// nil and Cleanse falls back to passing candidates straight through the
	// deterministic normalizer/invalidity gate.
	var chatCompleter cleanserPorts.ChatCompleter
	if cfg.LLM.AnthropicAPIKey != "" {
		chatCompleter = anthropicClient.NewAnthropicChatCompleter(cfg.LLM.AnthropicAPIKey, anthropic.Model(cfg.LLM.Model))
	} else {
		appLogger.Info("No Anthropic API key configured, cleansing will pass candidates through unscored")
	}
	cleanser := cleanserService.NewCleanser(chatCompleter, cleanserService.DefaultBatchSize, cleanserService.DefaultMaxRetries, appLogger.Logger)

	// C4 scraping: plain HTTP fetch first, optional headless-browser
	// fallback when SCRAPE_JS_RENDER is enabled.
	var renderer scraperPorts.Renderer
	if cfg.Scrape.JSRender {
		renderer = render.NewRodRenderer()
	}
	scraper := scraperService.NewScraper(cfg.Scrape.Concurrent, renderer, cfg.Scrape.JSRender, appLogger.Logger)

	// C6 collaborator: the spreadsheet webhook is both the existing-domain
	// source and the result sink; the progress reporter is whichever
	// outward channel is configured, falling back to a silent no-op.
	webhookClient := collaboratorClient.NewWebhookClient(cfg.Collaborator.WebhookURL, 0, appLogger.Logger)

	var reporter collaboratorPorts.ProgressReporter = collaboratorService.NoopReporter{}
	if cfg.Slack.BotToken != "" {
		reporter = collaboratorClient.NewSlackReporter(cfg.Slack.BotToken, "", "", appLogger.Logger)
		appLogger.Info("Progress reporting via Slack")
	} else if cfg.Resend.APIKey != "" && cfg.Resend.ToEmail != "" {
		reporter = collaboratorClient.NewEmailReporter(cfg.Resend.APIKey, cfg.Resend.FromEmail, []string{cfg.Resend.ToEmail}, appLogger.Logger)
		appLogger.Info("Progress reporting via email")
	} else {
		appLogger.Info("No progress reporter configured, running silently")
	}

	artifactMirror := collaboratorService.NewArtifactMirror(s3Client, appLogger.Logger)

	// C7 job registry: Redis-backed, TTL-bounded job bookkeeping.
	jobRepository := jobRepo.NewJobRepository(redisClient.Client)
	jobSvc := jobService.NewJobService(jobRepository, cfg.JWT.JobTokenExpiry)

	// Postgres-backed audit log of every finished run.
	runRepository := runsRepo.NewRunRepository(pgClient.Pool)
	runSvc := runsService.NewRunService(runRepository, appLogger.Logger)

	// C5 round controller: wires C1-C4 and C6 together for one job.
	controller := pipeline.New(
		jobSvc,
		aggregator,
		cleanser,
		scraper,
		webhookClient,
		webhookClient,
		reporter,
		artifactMirror,
		runSvc,
		appLogger.Logger,
	)

	// Required externals that the pipeline cannot recover from mid-run;
	// missing either is rejected at request time instead of failing deep
	// inside the async pipeline.
	var missingConfig string
	switch {
	case cfg.Serper.APIKey == "":
		missingConfig = "SERPER_API_KEY"
	case cfg.Collaborator.WebhookURL == "":
		missingConfig = "GAS_WEBHOOK_URL"
	}
	if missingConfig != "" {
		appLogger.Warn("Required configuration missing, /search will reject requests until configured",
			zap.String("missing", missingConfig))
	}

	jobHdl := jobHandler.NewJobHandler(jobSvc, jobTokenMgr, controller, missingConfig)
	runHdl := runsHandler.NewRunHandler(runSvc)

	v1 := router.Group("/api/v1")
	{
		jobHdl.RegisterRoutes(v1, jobTokenMiddleware)
		runHdl.RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
