package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	internalhttp "github.com/onboardly/dirprov/internal/api/http"
	"github.com/onboardly/dirprov/internal/audit"
	cfgsource "github.com/onboardly/dirprov/internal/config"
	"github.com/onboardly/dirprov/internal/directory"
	"github.com/onboardly/dirprov/internal/notify"
	"github.com/onboardly/dirprov/internal/workflow"
	"github.com/spf13/viper"
)

var AppVersion string

func main() {
	InitConfig()

	slog.Info("Dirprov Server", "version", AppVersion)

	var auditStore *audit.Store
	if config.Database.URL != "" {
		if err := audit.RunMigrations(config.Database.URL, config.Database.Schema); err != nil {
			slog.Error("Failed to run audit migrations", "error", err)
			os.Exit(1)
		}
		pool, err := audit.InitDB(context.Background(), config.Database.URL, config.Database.Schema)
		if err != nil {
			slog.Error("Failed to connect to audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		auditStore = audit.NewStore(pool)
	} else {
		slog.Warn("Audit database not configured, provisioning outcomes will not be persisted")
	}

	directoryClient := directory.NewClient(config.Directory)

	var notifier workflow.NotificationSink = notify.Log{}
	if config.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(config.Notify.WebhookURL)
	}

	provisioner := workflow.New(
		cfgsource.NewViper(viper.GetViper(), "provision"),
		directoryClient,
		notifier,
		workflow.WithPropagationDelay(config.Provision.PropagationDelay),
	)

	services := &internalhttp.Services{
		Provisioner: provisioner,
		AuditStore:  auditStore,
		APIKeyHash:  config.Http.APIKeyHash,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(gin.Recovery())
	internalhttp.SetupRoute(engine, services)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Http.Port),
		Handler: engine,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	sig := <-quit
	slog.Info("Received shutdown signal", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
