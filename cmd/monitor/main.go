package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"traderlens/internal/auth"
	"traderlens/internal/client/aster"
	"traderlens/internal/config"
	cronrunner "traderlens/internal/cron"
	"traderlens/internal/db"
	"traderlens/internal/handler"
	"traderlens/internal/ledger"
	"traderlens/internal/logger"
	gormrepository "traderlens/internal/repository/gorm"
	"traderlens/internal/service"

	_ "traderlens/docs"
)

func main() {
	cfgPath := os.Getenv("TL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default system switches failed", zap.Error(err))
	}

	engineSvc := &ledger.Engine{Logger: logger}
	ledgerSvc := &service.LedgerService{
		Repo:            store,
		Engine:          engineSvc,
		Logger:          logger,
		PortfolioWindow: cfg.Ledger.PortfolioWindow,
	}

	exchangeHTTP := &http.Client{Timeout: cfg.Exchange.Timeout}
	collector := &service.SnapshotCollector{
		Repo:   store,
		Logger: logger,
		Flags:  settingsSvc,
		NewClient: func(apiKey, apiSecret string) service.ExchangeClient {
			return aster.NewClient(exchangeHTTP, cfg.Exchange.BaseURL, apiKey, apiSecret, int64(cfg.Exchange.RecvWindow))
		},
	}
	retention := &service.RetentionService{
		Repo:         store,
		Logger:       logger,
		Flags:        settingsSvc,
		SnapshotDays: cfg.Retention.SnapshotDays,
	}
	markStream := &service.MarkStreamService{
		Repo:   store,
		Logger: logger,
		Flags:  settingsSvc,
		URL:    cfg.MarkStream.URL,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(auth.RequireBearerMiddleware())
	engine.Use(auth.WriteAuditMiddleware(logger))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	ledgerHandler := &handler.LedgerHandler{Ledger: ledgerSvc}
	ledgerHandler.Register(engine)
	portfolioHandler := &handler.PortfolioHandler{Ledger: ledgerSvc}
	portfolioHandler.Register(engine)
	tradersHandler := &handler.TradersHandler{Repo: store}
	tradersHandler.Register(engine)
	marksHandler := &handler.MarksHandler{Repo: store}
	marksHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Repo: store, Settings: settingsSvc}
	settingsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Collector.Enabled {
		_, err = cronRunner.Add(cfg.Cron.SnapshotSweep, func(ctx context.Context) {
			if err := collector.CollectOnce(ctx); err != nil {
				logger.Warn("cron snapshot sweep failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register snapshot sweep failed", zap.Error(err))
		}
	}
	_, err = cronRunner.Add(cfg.Cron.Retention, func(ctx context.Context) {
		if err := retention.PruneOnce(ctx); err != nil {
			logger.Warn("cron retention failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("cron register retention failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	if cfg.Collector.Enabled {
		// First sweep right away so the API has data before the first tick.
		go func() {
			if err := collector.CollectOnce(ctx); err != nil {
				logger.Warn("initial snapshot sweep failed (continuing)", zap.Error(err))
			}
		}()
	}

	if cfg.MarkStream.Enabled {
		go func() {
			if err := markStream.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("mark stream stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
	logger.Info("bye")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
