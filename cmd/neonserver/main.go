package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Pangeneses/NeonServer/internal/config"
	"github.com/Pangeneses/NeonServer/internal/logger"
	"github.com/Pangeneses/NeonServer/internal/router"
	"github.com/Pangeneses/NeonServer/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	deps, err := setup.SetupDependencies(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("failed to initialize dependencies", "err", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Storage.Cleanup(ctx); err != nil {
			slog.Error("failed to close storage", "err", err)
		}
	}()

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	slog.Info("server started", "port", httpPort)
	if err := http.ListenAndServe(":"+httpPort, r); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
