// Package alert is the outbound notification boundary. The scheduler talks
// to it through a narrow interface; delivery failures never propagate.
package alert

import (
	applog "fintrack/internal/log"
)

// LogAlerter writes alerts to the structured log. It stands in for an
// OS-level notifier; wiring a real one only requires another Notify
// implementation.
type LogAlerter struct {
	logger *applog.Logger
}

// NewLogAlerter creates an alerter backed by the given logger.
func NewLogAlerter(logger *applog.Logger) *LogAlerter {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LogAlerter{logger: logger.WithComponent(applog.ComponentAlerter)}
}

// Notify emits the alert. It never fails; the error return exists only to
// satisfy the scheduler's best-effort contract.
func (a *LogAlerter) Notify(title, body string) error {
	a.logger.Info("ALERT", "title", title, "body", body)
	return nil
}
