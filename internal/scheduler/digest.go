package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/spend-forecast/internal/config"
	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Summarizer forecasts a user's stored history
type Summarizer interface {
	SummarizeForUser(ctx context.Context, userID int64) (*models.ForecastSummary, error)
}

// Mailer delivers a forecast summary
type Mailer interface {
	SendForecastDigest(to string, summary *models.ForecastSummary) error
}

// Digest periodically forecasts each recipient's spending and emails the result
type Digest struct {
	svc        Summarizer
	mailer     Mailer
	recipients []config.DigestRecipient
	timeout    time.Duration
	log        *logrus.Logger
	cron       *cron.Cron
}

// NewDigest creates a digest job. timeout bounds each recipient's forecast.
func NewDigest(svc Summarizer, mailer Mailer, recipients []config.DigestRecipient, timeout time.Duration, log *logrus.Logger) *Digest {
	cronLog := cron.PrintfLogger(log)
	return &Digest{
		svc:        svc,
		mailer:     mailer,
		recipients: recipients,
		timeout:    timeout,
		log:        log,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
}

// Start schedules the job with a standard five-field cron expression
func (d *Digest) Start(schedule string) error {
	if _, err := d.cron.AddFunc(schedule, func() { d.Run(context.Background()) }); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	d.cron.Start()
	d.log.Infof("Forecast digest scheduled (%s) for %d recipients", schedule, len(d.recipients))
	return nil
}

// Stop halts scheduling and returns a context done when a running job finishes
func (d *Digest) Stop() context.Context {
	return d.cron.Stop()
}

// Run sends the digest to every recipient once and returns how many were sent.
// A failure for one recipient does not stop the others.
func (d *Digest) Run(ctx context.Context) int {
	sent := 0
	for _, r := range d.recipients {
		if err := d.sendOne(ctx, r); err != nil {
			d.log.WithFields(logrus.Fields{"user_id": r.UserID}).Warnf("Forecast digest skipped: %v", err)
			continue
		}
		sent++
	}
	d.log.Infof("Forecast digest sent to %d of %d recipients", sent, len(d.recipients))
	return sent
}

func (d *Digest) sendOne(ctx context.Context, r config.DigestRecipient) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	summary, err := d.svc.SummarizeForUser(ctx, r.UserID)
	if err != nil {
		return err
	}
	return d.mailer.SendForecastDigest(r.Email, summary)
}
