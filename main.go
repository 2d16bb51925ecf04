package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"databowl-gateway/pkg/app"
	"databowl-gateway/pkg/config"
	"databowl-gateway/pkg/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a config file")
	flag.Parse()

	os.Exit(run(*configPath))
}

// run returns the process exit code so deferred cleanup finishes before exit.
func run(configPath string) int {
	// Initialize configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		return 1
	}

	appLogger := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = appLogger.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	gateway, err := app.Build(cfg, appLogger)
	if err != nil {
		appLogger.Error("error building application", map[string]interface{}{"error": err.Error()})
		return 1
	}
	defer gateway.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           gateway.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("server starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		appLogger.Error("error starting server", map[string]interface{}{"error": err.Error()})
		return 1
	case <-quit:
	}

	appLogger.Info("shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", map[string]interface{}{"error": err.Error()})
		return 1
	}
	return 0
}
