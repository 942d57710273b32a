package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"impact-ledger/impact-portal-backend/internal/config"
	"impact-ledger/impact-portal-backend/internal/projects"
	"impact-ledger/impact-portal-backend/internal/reference"
	"impact-ledger/impact-portal-backend/internal/reports"
	"impact-ledger/impact-portal-backend/internal/scoring"
	"impact-ledger/impact-portal-backend/internal/tokenization"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the configuration file")
	flag.Parse()

	// .env is optional; environment variables always win over the file.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&projects.Project{},
		&projects.Assessment{},
		&projects.ProjectActivity{},
		&tokenization.Issuance{},
	); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ref := reference.Default()
	if v := cfg.Scoring.ReferenceVersion; v != "" && v != ref.Version() {
		logger.Warn("Configured reference version does not match the bundled dataset",
			zap.String("configured", v),
			zap.String("bundled", ref.Version()))
	}
	engine := scoring.NewEngine(ref, scoringWeights(cfg.Scoring))

	// ---------------- PROJECTS ----------------
	projectsRepo := projects.NewRepository(db)
	projectsService := projects.NewService(projectsRepo, engine, logger)
	projectsHandler := projects.NewHandler(projectsService)

	// ---------------- REPORTS ----------------
	reportsService := reports.NewService(projectsRepo, cfg.Reports.Organization, cfg.Reports.OutputDir, logger)
	reportsHandler := reports.NewHandler(reportsService)

	scheduler := reports.NewScheduler(reportsService, cfg.Reports.ExportCron, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("Failed to start report scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// ---------------- TOKENIZATION ----------------
	var tokenizationHandler *tokenization.Handler
	if cfg.Tokenization.IssuerSecretKey != "" {
		stellarClient, err := tokenization.NewStellarClient(cfg.Tokenization)
		if err != nil {
			logger.Fatal("Failed to initialize Stellar client", zap.Error(err))
		}
		tokenizationRepo := tokenization.NewRepository(db)
		tokenizationService := tokenization.NewService(tokenizationRepo, projectsRepo, stellarClient, ref, logger)
		tokenizationHandler = tokenization.NewHandler(tokenizationService)
	} else {
		logger.Warn("STELLAR_ISSUER_SECRET not set, tokenization routes disabled")
	}

	// Setup Router
	router := gin.Default()
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	{
		projectsHandler.RegisterRoutes(api)
		reportsHandler.RegisterRoutes(api)
		if tokenizationHandler != nil {
			tokenizationHandler.RegisterRoutes(api)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"reference_version": ref.Version(),
			"timestamp":         time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("addr", srv.Addr),
		zap.String("reference_version", ref.Version()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// scoringWeights maps the configured overrides onto the engine defaults.
// Zero values keep the default.
func scoringWeights(cfg config.ScoringConfig) scoring.Weights {
	weights := scoring.DefaultWeights()
	if cfg.SROIWeight > 0 {
		weights.SROIWeight = cfg.SROIWeight
	}
	if cfg.FiscalWeight > 0 {
		weights.FiscalWeight = cfg.FiscalWeight
	}
	if cfg.CreditScaleFactor > 0 {
		weights.CreditScaleFactor = cfg.CreditScaleFactor
	}
	if cfg.CreditFloor > 0 {
		weights.CreditFloor = cfg.CreditFloor
	}
	if cfg.CrimeBudgetShare > 0 {
		weights.CrimeBudgetShare = cfg.CrimeBudgetShare
	}
	if cfg.EnvironmentalBudgetShare > 0 {
		weights.EnvironmentalBudgetShare = cfg.EnvironmentalBudgetShare
	}
	weights.EnableCrimeImpact = !cfg.DisableCrimeImpact
	weights.EnableEnvironmental = !cfg.DisableEnvironmental
	return weights
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
