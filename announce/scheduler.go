package announce

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// StartScheduler registers the engine on the given cron cadence and starts
// it in the background. Each tick is independent: a failed run is logged
// and never cancels future runs.
func StartScheduler(cronSpec string, engine *Engine, log *zap.Logger) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Cron(cronSpec).Do(func() {
		report, err := engine.Run(time.Now().UTC())
		if err != nil {
			log.Error("announcement run failed", zap.Error(err))
		}

		for _, guild := range report.Guilds {
			if guild.Err != nil {
				log.Warn("guild announcement will be retried",
					zap.String("guild", guild.GuildID),
					zap.Error(guild.Err))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	log.Info("announcement scheduler started", zap.String("cron", cronSpec))

	return scheduler, nil
}
