package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/openclaw/clawkeeper/internal/utils"
)

func newDeps() *utils.Dependencies {
	return &utils.Dependencies{
		Logger:     zap.NewNop().Sugar(),
		CronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

func TestRunRejectsInvalidExpression(t *testing.T) {
	err := Run(context.Background(), newDeps(), "not a cron line", func(context.Context) error { return nil })
	if !errors.Is(err, utils.ErrConfiguration) {
		t.Fatalf("Run() error = %v, expected configuration class", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With the context already canceled, Run must return promptly without
	// waiting for a tick.
	err := Run(ctx, newDeps(), "0 3 * * *", func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}
