// Package scheduler runs a job on a cron expression until the process is
// told to stop. Used by the schedule command for recurring backups.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openclaw/clawkeeper/internal/utils"
)

// Run blocks until ctx is canceled, executing job at every tick of spec.
// Overlapping runs are prevented by cron's job queue being single per entry;
// a failed run is logged and the schedule keeps going.
func Run(ctx context.Context, deps *utils.Dependencies, spec string, job func(context.Context) error) error {
	log := deps.Logger.Named("scheduler")

	schedule, err := deps.CronParser.Parse(spec)
	if err != nil {
		return utils.ConfigurationErrorf("invalid cron expression %q: %v", spec, err)
	}

	runner := cron.New(cron.WithParser(deps.CronParser))
	runner.Schedule(schedule, cron.FuncJob(func() {
		if err := job(ctx); err != nil {
			log.Errorw("Scheduled run failed", "error", err)
		}
	}))

	runner.Start()
	log.Infow("Schedule active", "schedule", spec, "next", schedule.Next(time.Now()))

	<-ctx.Done()
	log.Infow("Shutting down, waiting for running job")
	<-runner.Stop().Done()
	return nil
}
