package worker

import (
	"context"
	"time"

	"travelo-booking/internal/data/repository"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const reapInterval = time.Minute

// Reaper sweeps expired holds in the background so capacity released by
// abandoned checkouts does not wait for the next availability read.
type Reaper struct {
	repo      *repository.Repository
	log       *zap.Logger
	scheduler gocron.Scheduler
}

func NewReaper(repo *repository.Repository, log *zap.Logger) (*Reaper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Reaper{
		repo:      repo,
		log:       log.With(zap.String("worker", "hold-reaper")),
		scheduler: scheduler,
	}, nil
}

func (r *Reaper) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(reapInterval),
		gocron.NewTask(r.sweep),
	)
	if err != nil {
		return err
	}

	r.scheduler.Start()
	r.log.Info("Hold reaper started", zap.Duration("interval", reapInterval))
	return nil
}

func (r *Reaper) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *Reaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := r.repo.Booking.ExpireDue(ctx, time.Now())
	if err != nil {
		r.log.Error("Failed to sweep expired holds", zap.Error(err))
		return
	}
	if expired > 0 {
		r.log.Info("Expired stale holds", zap.Int64("count", expired))
	}
}
