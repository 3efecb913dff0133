package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	carmuseum "github.com/logan676/carMuseum"
)

func runServe(ctx context.Context) error {
	cfg, err := carmuseum.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := carmuseum.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	content, err := carmuseum.LoadContent(ctx, cfg)
	if err != nil {
		logger.Error("load content", zap.Error(err))
		return err
	}

	limiter, err := carmuseum.NewLimiter(ctx, cfg)
	if err != nil {
		logger.Error("init rate limiter", zap.Error(err))
		return err
	}

	app := carmuseum.New(cfg, content,
		carmuseum.WithLogger(logger),
		carmuseum.WithLimiter(limiter),
	)
	defer app.Close()

	return app.Start(ctx)
}

func runExportSQLite(ctx context.Context, path string) error {
	content, err := carmuseum.LoadEmbedded()
	if err != nil {
		return err
	}
	db, err := carmuseum.OpenContentDB(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()
	if err := db.ReplaceDataset(ctx, content.Dataset()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("exported content %s to %s\n", content.Version(), path)
	return nil
}

func runDump(ctx context.Context, w io.Writer) error {
	cfg, err := carmuseum.LoadConfig()
	if err != nil {
		return err
	}
	content, err := carmuseum.LoadContent(ctx, cfg)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(carmuseum.NewQueryService(content).GetSummary())
}
