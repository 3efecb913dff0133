package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	carmuseum "github.com/logan676/carMuseum"
)

var app *carmuseum.App

func init() {
	cfg, err := carmuseum.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := carmuseum.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}

	ctx := context.Background()
	content, err := carmuseum.LoadContent(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to load content", zap.Error(err))
	}

	// Rate limits only apply through a shared Redis across Lambda instances.
	var limiter carmuseum.Limiter
	if cfg.RedisAddr != "" {
		limiter, err = carmuseum.NewLimiter(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to init rate limiter", zap.Error(err))
		}
	} else {
		cfg.RateLimit = -1
	}

	app = carmuseum.New(cfg, content,
		carmuseum.WithLogger(logger),
		carmuseum.WithLimiter(limiter),
	)
	logger.Info("Lambda handler initialized", zap.String("content_version", content.Version()))
}

func main() {
	lambda.Start(app.HandleLambda)
}
