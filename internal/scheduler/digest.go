package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/interfaces"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// Notifier delivers a rendered message to a Telegram chat
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Digest pushes the weekly report to every user on a cron schedule
type Digest struct {
	cron     *cron.Cron
	users    interfaces.UserServiceInterface
	reports  interfaces.ReportServiceInterface
	notifier Notifier
}

// NewDigest registers the digest job. schedule is a standard 5-field cron expression
// evaluated in loc.
func NewDigest(schedule string, loc *time.Location, users interfaces.UserServiceInterface, reports interfaces.ReportServiceInterface, notifier Notifier) (*Digest, error) {
	if loc == nil {
		loc = time.UTC
	}
	d := &Digest{
		cron:     cron.New(cron.WithLocation(loc)),
		users:    users,
		reports:  reports,
		notifier: notifier,
	}

	log := logger.WithFields("job", "weekly_digest", "schedule", schedule)
	_, err := d.cron.AddFunc(schedule, func() {
		sent, err := d.RunOnce(context.Background())
		if err != nil {
			log.Error("Weekly digest finished with errors", "sent", sent, "error", err)
			return
		}
		log.Info("Weekly digest sent", "sent", sent)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule digest %q: %w", schedule, err)
	}
	return d, nil
}

// Start runs the scheduler in the background
func (d *Digest) Start() {
	d.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// RunOnce sends the digest to every user with activity in the last 7 days.
// A failure for one user does not stop the others.
func (d *Digest) RunOnce(ctx context.Context) (int, error) {
	ctx, _ = logger.NewRequestContext(ctx)
	log := logger.WithContext(ctx)

	users, err := d.users.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	today := d.reports.Today()
	sent := 0
	var errs []error
	for _, u := range users {
		if u.TelegramID == 0 {
			continue
		}
		dashboard, err := d.reports.Dashboard(ctx, u.ID, today)
		if err != nil {
			log.Error("Failed to build digest", "user_id", u.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		if dashboard.Summary.DaysLogged == 0 && dashboard.Summary.DaysActive == 0 {
			continue
		}
		if err := d.notifier.Notify(u.TelegramID, menus.FormatWeeklyReport(dashboard)); err != nil {
			log.Error("Failed to send digest", "user_id", u.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
