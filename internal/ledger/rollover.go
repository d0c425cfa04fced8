package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

const monthTagLayout = "2006-01"

// MonthTag returns the YYYY-MM tag for t, as stored in lastReset.
func MonthTag(t time.Time) string {
	return t.Format(monthTagLayout)
}

// Rollover zeroes the monthly-scoped contribution counters when the
// calendar month has changed since lastReset. Cumulative fields (entries,
// totals, goal balances, targets) are never touched. It is idempotent
// within a month and must run before any other read of a loaded snapshot.
func Rollover(snap core.Snapshot, now time.Time) (core.Snapshot, bool) {
	tag := MonthTag(now)
	if snap.LastReset == tag {
		return snap, false
	}

	next := snap.Clone()
	next.LastReset = tag
	next.Savings.MonthlyContributions = decimal.Zero
	for i := range next.Savings.Goals {
		next.Savings.Goals[i].MonthlyContributions = decimal.Zero
	}
	return next, true
}

// Migrate produces a current-shape snapshot from a document of unknown or
// older shape. Default-fill rules are explicit per field rather than an
// implicit object merge:
//
//   - missing collections become empty, never nil
//   - zero monthlyLimit / savings.monthlyGoal take the documented defaults
//   - missing currency/settings take the defaults
//   - unknown goal icons collapse to the "other" tag
//   - missing lastReset anchors to the current month
//   - version is stamped to the current snapshot version
func Migrate(snap core.Snapshot, now time.Time) core.Snapshot {
	def := core.DefaultSnapshot(now)
	next := snap.Clone()

	if next.Entries == nil {
		next.Entries = []core.Transaction{}
	}
	if next.Savings.Goals == nil {
		next.Savings.Goals = []core.SavingsGoal{}
	}
	if next.Reminders == nil {
		next.Reminders = []core.Reminder{}
	}
	if next.Notifications == nil {
		next.Notifications = []core.Notification{}
	}

	if next.MonthlyLimit.IsZero() {
		next.MonthlyLimit = def.MonthlyLimit
	}
	if next.Savings.MonthlyGoal.IsZero() {
		next.Savings.MonthlyGoal = def.Savings.MonthlyGoal
	}
	if next.Currency == "" {
		next.Currency = def.Currency
	}
	if next.Settings == (core.Settings{}) {
		next.Settings = def.Settings
	}
	if next.LastReset == "" {
		next.LastReset = def.LastReset
	}

	for i := range next.Savings.Goals {
		next.Savings.Goals[i].Icon = core.NormalizeIcon(next.Savings.Goals[i].Icon)
	}
	if len(next.Notifications) > core.NotificationCap {
		next.Notifications = next.Notifications[:core.NotificationCap]
	}

	next.Version = core.SnapshotVersion
	return next
}
