package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medikita/platform/internal/config"
	"github.com/medikita/platform/internal/observability"
	"github.com/medikita/platform/internal/persistence"
)

// toolRuntime carries the shared dependencies every subcommand needs.
type toolRuntime struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
}

func newToolRuntime(ctx context.Context, needPostgres bool) (*toolRuntime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &toolRuntime{cfg: cfg, logger: logger}
	if needPostgres {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.pg = pg
	}
	return rt, nil
}

func (rt *toolRuntime) close() {
	if rt.pg != nil {
		rt.pg.Close()
	}
	_ = rt.logger.Sync()
}
