package scheduler

import (
	"context"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// DefaultTickInterval is how often reminders are re-evaluated. Timing
// precision below one tick is not guaranteed; a reminder fires on the first
// tick inside its matching minute.
const DefaultTickInterval = 30 * time.Second

// Clock abstracts wall-clock time so tests can drive tick sequences
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }

// Alerter delivers a user-visible notification outside the app. Delivery is
// best-effort: errors are swallowed here and never reach the ledger.
type Alerter interface {
	Notify(title, body string) error
}

// Ledger is the slice of the store the scheduler needs.
type Ledger interface {
	Snapshot() core.Snapshot
	FireReminder(ctx context.Context, id string) (core.Snapshot, error)
	ClearTrigger(ctx context.Context, id string) (core.Snapshot, error)
}

// Scheduler polls the ledger's reminders on a fixed interval.
//
// A reminder fires when it is enabled, not yet triggered, its HH:MM equals
// the tick's wall-clock HH:MM, and its frequency rule matches the tick's
// date against the anchor. Firing sets Triggered, which suppresses the
// second tick of the same minute; Triggered is cleared again on the first
// tick whose HH:MM no longer matches, so recurring reminders fire once per
// occurrence rather than once ever.
type Scheduler struct {
	ledger   Ledger
	alerter  Alerter
	clock    Clock
	interval time.Duration
	logger   *applog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithLogger sets the scheduler logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// New creates a scheduler over the given ledger and alerter.
func New(ledger Ledger, alerter Alerter, opts ...Option) *Scheduler {
	s := &Scheduler{
		ledger:   ledger,
		alerter:  alerter,
		clock:    systemClock{},
		interval: DefaultTickInterval,
		logger:   applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentScheduler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks until ctx is cancelled. The ticker is torn down on return so a
// disposed ledger reference is never acted on.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "Reminder scheduler started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Reminder scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx, s.clock.Now())
		}
	}
}

// Tick evaluates every reminder against the given instant. Exported so
// startup can run an immediate pass and tests can drive tick sequences.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	currentTime := now.Format("15:04")

	for _, rem := range s.ledger.Snapshot().Reminders {
		if !rem.Enabled {
			continue
		}

		if rem.Time != currentTime {
			if rem.Triggered {
				if _, err := s.ledger.ClearTrigger(ctx, rem.ID); err != nil {
					s.logger.WarnContext(ctx, "Failed to clear reminder trigger",
						applog.FieldReminderID, rem.ID, applog.FieldError, err.Error())
				}
			}
			continue
		}
		if rem.Triggered {
			continue
		}
		if !MatcherFor(rem.Frequency).Matches(now, rem.Date) {
			continue
		}

		s.fire(ctx, rem, now)
	}
}

func (s *Scheduler) fire(ctx context.Context, rem core.Reminder, now time.Time) {
	// Alerter failures are swallowed: the reminder still transitions to
	// triggered and the in-app notification is still appended.
	if s.alerter != nil {
		if err := s.alerter.Notify("Finance App Reminder", rem.Title); err != nil {
			s.logger.WarnContext(ctx, "Alerter unavailable, continuing",
				applog.FieldReminderID, rem.ID, applog.FieldError, err.Error())
		}
	}

	if _, err := s.ledger.FireReminder(ctx, rem.ID); err != nil {
		s.logger.WarnContext(ctx, "Failed to mark reminder triggered",
			applog.FieldReminderID, rem.ID, applog.FieldError, err.Error())
		return
	}

	s.logger.InfoContext(ctx, "Reminder fired",
		applog.FieldReminderID, rem.ID,
		applog.FieldReminderTitle, rem.Title,
		applog.FieldFrequency, string(rem.Frequency),
		applog.FieldTick, now.Format(time.RFC3339))
}
