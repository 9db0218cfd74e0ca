// Package janitor removes soft-deleted resources after a retention period.
package janitor

import (
	"time"

	"github.com/hotwellkz/app59/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Janitor purges soft-deleted resources on a cron schedule.
type Janitor struct {
	cron   *cron.Cron
	maxAge time.Duration
}

// New creates a Janitor that deletes resources which have been
// soft-deleted for more than maxAgeDays days.
func New(maxAgeDays int) *Janitor {
	return &Janitor{
		cron:   cron.New(),
		maxAge: time.Duration(maxAgeDays) * 24 * time.Hour,
	}
}

// Start schedules the purge and starts the cron runner.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		if err := j.Purge(); err != nil {
			log.Error().Err(err).Msg("purge failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for a running purge to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

// Purge permanently deletes all soft-deleted resources older than the
// retention period. Transactions go first so that no category purge can
// trip over history rows still referencing it.
func (j *Janitor) Purge() error {
	cutoff := time.Now().In(time.UTC).Add(-j.maxAge)

	for _, model := range []any{&models.Transaction{}, &models.Category{}, &models.Client{}} {
		err := models.DB.
			Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(model).Error
		if err != nil {
			return err
		}
	}

	log.Debug().Time("cutoff", cutoff).Msg("purge complete")
	return nil
}
