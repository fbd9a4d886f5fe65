package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"kb-assessor/config"
	"kb-assessor/driver"
	"kb-assessor/handler"
	"kb-assessor/middleware"
	"kb-assessor/repository"
	"kb-assessor/service"
	"kb-assessor/utils/logger"
)

func main() {
	log := logger.Init()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	log.InfoContext(ctx, "configuration loaded",
		"port", cfg.Server.Port,
		"servicenow_table", cfg.ServiceNow.Table,
		"llm_model", cfg.LLM.Model,
		"rewrite_model", cfg.LLMRewrite.Model)

	dbPool, err := driver.Init(ctx, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to initialize database pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := driver.Migrate(ctx, dbPool, log); err != nil {
		log.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	serviceNowClient, err := driver.NewServiceNowClient(&cfg.ServiceNow, &cfg.App, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build servicenow client", "error", err)
		os.Exit(1)
	}

	llmClient, err := driver.NewLLMClient(&cfg.LLM, &cfg.App, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build llm client", "error", err)
		os.Exit(1)
	}

	rewriteLLMClient, err := driver.NewLLMClient(&cfg.LLMRewrite, &cfg.App, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build rewrite llm client", "error", err)
		os.Exit(1)
	}

	articleRepo := repository.NewArticleRepository(dbPool, log)
	assessmentRepo := repository.NewAssessmentRepository(dbPool, log)
	stateRepo := repository.NewAppStateRepository(dbPool, log)

	assessmentService := service.NewAssessmentService(
		articleRepo, assessmentRepo, serviceNowClient, llmClient,
		cfg.LLM.Model, &cfg.Prompts, cfg.App.LogLLMResponses, log)
	rewriteService := service.NewRewriteService(
		articleRepo, assessmentRepo, serviceNowClient, rewriteLLMClient,
		&cfg.Prompts, cfg.App.LogLLMResponses, log)
	syncService := service.NewSyncService(articleRepo, stateRepo, serviceNowClient, log)

	assessmentHandler := handler.NewAssessmentHandler(assessmentService, articleRepo, assessmentRepo, log)
	rewriteHandler := handler.NewRewriteHandler(rewriteService, log)
	syncHandler := handler.NewSyncHandler(syncService, log)
	articleHandler := handler.NewArticleHandler(articleRepo, stateRepo, log)
	healthHandler := handler.NewHealthHandler(dbPool, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.App.LogErrors, log)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestIDMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/v1/health", healthHandler.HandleHealth)

	api := e.Group("/api/v1")
	api.POST("/assess", assessmentHandler.HandleAssess)
	api.POST("/rewrite", rewriteHandler.HandleRewrite)
	api.POST("/sync", syncHandler.HandleSync)
	api.GET("/articles", articleHandler.HandleList)
	api.POST("/articles/delete", articleHandler.HandleDelete)
	api.POST("/articles/mark-current", assessmentHandler.HandleMarkCurrent)
	api.GET("/articles/:id/assessment", assessmentHandler.HandleDetails)
	api.POST("/assessments/progress", assessmentHandler.HandleProgress)
	api.POST("/assessments/cancel", assessmentHandler.HandleCancel)

	address := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		log.InfoContext(ctx, "starting kb-assessor server", "address", address)

		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.ErrorContext(ctx, "server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.InfoContext(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.InfoContext(ctx, "server exited properly")
}
