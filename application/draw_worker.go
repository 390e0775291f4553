package application

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// drawCronSpec fires at 20:00 on Thursdays and Sundays, the draw slots.
const drawCronSpec = "0 20 * * 4,0"

// DrawWorker settles due draws on the draw schedule. Draws that were due
// while the process was down are picked up by the catch-up pass on start.
type DrawWorker struct {
	app      *App
	location *time.Location
	cron     *cron.Cron
}

// NewDrawWorker creates a new draw worker
func NewDrawWorker(app *App, location *time.Location) *DrawWorker {
	if location == nil {
		location = time.UTC
	}
	return &DrawWorker{
		app:      app,
		location: location,
	}
}

// Start begins the worker and returns a stop function
func (w *DrawWorker) Start(ctx context.Context) (func(), error) {
	w.cron = cron.New(cron.WithLocation(w.location))

	if _, err := w.cron.AddFunc(drawCronSpec, func() {
		w.settleDue(ctx)
	}); err != nil {
		return nil, err
	}

	// Catch-up pass for draws that became due while the process was down.
	go w.settleDue(ctx)

	w.cron.Start()
	log.WithField("schedule", drawCronSpec).Info("Draw worker started")

	return func() {
		stopCtx := w.cron.Stop()
		<-stopCtx.Done()
		log.Info("Draw worker stopped")
	}, nil
}

func (w *DrawWorker) settleDue(ctx context.Context) {
	reports, err := w.app.SettleDueDraws(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to settle due draws")
		return
	}

	for _, report := range reports {
		log.WithFields(log.Fields{
			"drawID":      report.DrawID,
			"winnersPaid": report.WinnersPaid,
			"totalPayout": report.TotalPayout,
		}).Info("Due draw settled")
	}
}
