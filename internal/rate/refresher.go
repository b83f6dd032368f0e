package rate

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/middleware"
)

// Refresher periodically records the provider quote with source=automatic.
// Failures are logged and retried on the next tick; they never affect
// request handling.
type Refresher struct {
	service *Service
	fetcher *Fetcher
	log     *zap.SugaredLogger
	cron    *cron.Cron
}

func NewRefresher(service *Service, fetcher *Fetcher, log *zap.SugaredLogger) *Refresher {
	return &Refresher{
		service: service,
		fetcher: fetcher,
		log:     log,
		cron:    cron.New(),
	}
}

// Start registers the schedule and launches the cron loop. It also refreshes
// once immediately so a fresh deployment does not serve the seed rate for
// hours.
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.refreshOnce); err != nil {
		return err
	}
	go r.refreshOnce()
	r.cron.Start()
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	price, err := r.fetcher.FetchPricePerGram(ctx)
	if err != nil {
		middleware.RecordRateRefresh(false)
		r.log.Warnw("silver rate refresh failed", "error", err)
		return
	}

	recorded, err := r.service.Record(ctx, price, SourceAutomatic)
	if err != nil {
		middleware.RecordRateRefresh(false)
		r.log.Warnw("silver rate record failed", "error", err)
		return
	}
	middleware.RecordRateRefresh(true)
	r.log.Infow("silver rate refreshed", "pricePerGram", recorded.PricePerGram)
}
