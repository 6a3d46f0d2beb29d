package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"

	"example.com/softuni-fest/internal/app"
	"example.com/softuni-fest/internal/config"
	"example.com/softuni-fest/internal/infra/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, "json")
	slog.SetDefault(logger)

	application, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	lambda.Start(newAdapter(application.Handler).ProxyWithContext)
}

func newAdapter(router *chi.Mux) *chiadapter.ChiLambda {
	return chiadapter.New(router)
}
