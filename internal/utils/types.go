package utils

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Dependencies holds shared dependencies for the command implementations.
type Dependencies struct {
	Logger     *zap.SugaredLogger
	CronParser cron.Parser
}
