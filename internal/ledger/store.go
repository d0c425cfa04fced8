// Package ledger owns the mutable ledger snapshot and exposes every state
// transition as a synchronous method. No other component holds a mutable
// reference to snapshot internals: readers get deep copies, writers go
// through the Store, and each transition swaps in a freshly cloned value.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
)

var (
	ErrGoalNotFound     = errors.New("savings goal not found")
	ErrReminderNotFound = errors.New("reminder not found")
)

// Persister writes snapshots to the local store. A nil Persister keeps the
// ledger memory-only; write failures never fail a transition.
type Persister interface {
	Save(ctx context.Context, snap core.Snapshot) error
}

// Store is the single writer for the ledger snapshot.
type Store struct {
	mu        sync.Mutex
	snap      core.Snapshot
	persister Persister
	now       func() time.Time
	newID     func() string
	logger    *applog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides ID generation, mainly for tests.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the store logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store owning the given snapshot.
func NewStore(snap core.Snapshot, persister Persister, opts ...Option) *Store {
	s := &Store{
		snap:      snap.Clone(),
		persister: persister,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current ledger value.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Analytics recomputes the derived view from the current snapshot.
func (s *Store) Analytics() core.Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.ComputeAnalytics(s.snap.Entries, s.snap.TotalSalary, s.snap.TotalExpense, s.now())
}

// TransactionInput is the intent payload for AddTransaction.
type TransactionInput struct {
	Type          core.TransactionType
	Amount        decimal.Decimal
	Category      string
	Description   string
	PaymentMethod string
	Date          core.Date
}

// AddTransaction validates the input and prepends a new immutable entry.
// Income raises totalSalary, expense raises totalExpense. Invalid input
// leaves the ledger untouched apart from an error notification.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:              s.newID(),
		Amount:          in.Amount,
		TransactionType: in.Type,
		Category:        in.Category,
		Description:     in.Description,
		PaymentMethod:   in.PaymentMethod,
		Date:            in.Date,
		CreatedAt:       s.now(),
	}
	if err := tx.Validate(); err != nil {
		return s.reject(ctx, "Invalid transaction data", err)
	}

	next := s.snap.Clone()
	next.Entries = append([]core.Transaction{tx}, next.Entries...)
	if tx.TransactionType == core.Income {
		next.TotalSalary = next.TotalSalary.Add(tx.Amount)
	} else {
		next.TotalExpense = next.TotalExpense.Add(tx.Amount)
	}

	direction := "Expense"
	if tx.TransactionType == core.Income {
		direction = "Income"
	}
	s.appendNotification(&next, fmt.Sprintf("%s of %s added successfully!", direction, core.FormatAmount(tx.Amount)), core.NotifSuccess)

	s.commit(ctx, next, applog.OpAddTransaction,
		applog.FieldTransactionID, tx.ID,
		applog.FieldAmount, tx.Amount.String(),
		applog.FieldCategory, tx.Category)
	return next.Clone(), nil
}

// AddSavingsGoal creates a goal with zeroed balances.
func (s *Store) AddSavingsGoal(ctx context.Context, name string, target decimal.Decimal, icon core.Icon) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := core.SavingsGoal{
		ID:                   s.newID(),
		Name:                 name,
		Target:               target,
		Current:              decimal.Zero,
		MonthlyContributions: decimal.Zero,
		Icon:                 core.NormalizeIcon(icon),
	}
	if err := goal.Validate(); err != nil {
		return s.reject(ctx, "Invalid savings goal", err)
	}

	next := s.snap.Clone()
	next.Savings.Goals = append(next.Savings.Goals, goal)
	s.appendNotification(&next, fmt.Sprintf("Savings goal %q created!", goal.Name), core.NotifSuccess)

	s.commit(ctx, next, applog.OpAddGoal,
		applog.FieldGoalID, goal.ID,
		applog.FieldGoalName, goal.Name)
	return next.Clone(), nil
}

// UpdateSavingsGoal replaces the stored goal carrying the same ID.
// An unknown ID is a no-op.
func (s *Store) UpdateSavingsGoal(ctx context.Context, goal core.SavingsGoal) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := goal.Validate(); err != nil {
		return s.reject(ctx, "Invalid savings goal", err)
	}

	next := s.snap.Clone()
	idx := goalIndex(next.Savings.Goals, goal.ID)
	if idx < 0 {
		return s.snap.Clone(), ErrGoalNotFound
	}
	goal.Icon = core.NormalizeIcon(goal.Icon)
	next.Savings.Goals[idx] = goal

	s.commit(ctx, next, "update_goal", applog.FieldGoalID, goal.ID)
	return next.Clone(), nil
}

// ContributeToGoal adds amount to the goal and, in lockstep, to the savings
// aggregate. The aggregate intentionally counts goal money again: it reads
// as all money ever put toward any goal or general savings.
func (s *Store) ContributeToGoal(ctx context.Context, goalID string, amount decimal.Decimal) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidAmount(amount) {
		return s.reject(ctx, "Invalid contribution amount", core.ErrInvalidAmount)
	}

	next := s.snap.Clone()
	idx := goalIndex(next.Savings.Goals, goalID)
	if idx < 0 {
		return s.snap.Clone(), ErrGoalNotFound
	}

	goal := &next.Savings.Goals[idx]
	goal.Current = goal.Current.Add(amount)
	goal.MonthlyContributions = goal.MonthlyContributions.Add(amount)
	next.Savings.Current = next.Savings.Current.Add(amount)
	next.Savings.MonthlyContributions = next.Savings.MonthlyContributions.Add(amount)

	s.appendNotification(&next, fmt.Sprintf("Added %s to %q!", core.FormatAmount(amount), goal.Name), core.NotifSuccess)

	s.commit(ctx, next, applog.OpContribute,
		applog.FieldGoalID, goalID,
		applog.FieldAmount, amount.String())
	return next.Clone(), nil
}

// DeleteGoal removes the goal and subtracts its balances from the savings
// aggregate, clamped at zero so the aggregate never reads negative.
func (s *Store) DeleteGoal(ctx context.Context, goalID string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := goalIndex(next.Savings.Goals, goalID)
	if idx < 0 {
		return s.snap.Clone(), ErrGoalNotFound
	}

	goal := next.Savings.Goals[idx]
	next.Savings.Current = clampZero(next.Savings.Current.Sub(goal.Current))
	next.Savings.MonthlyContributions = clampZero(next.Savings.MonthlyContributions.Sub(goal.MonthlyContributions))
	next.Savings.Goals = append(next.Savings.Goals[:idx], next.Savings.Goals[idx+1:]...)

	s.commit(ctx, next, applog.OpDeleteGoal,
		applog.FieldGoalID, goalID,
		applog.FieldGoalName, goal.Name)
	return next.Clone(), nil
}

// UpdateMonthlyGoal sets the aggregate monthly savings target.
func (s *Store) UpdateMonthlyGoal(ctx context.Context, amount decimal.Decimal) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidAmount(amount) {
		return s.reject(ctx, "Invalid monthly goal amount", core.ErrInvalidAmount)
	}

	next := s.snap.Clone()
	next.Savings.MonthlyGoal = amount
	s.commit(ctx, next, "update_monthly_goal", applog.FieldAmount, amount.String())
	return next.Clone(), nil
}

// UpdateBudget sets the monthly spending limit.
func (s *Store) UpdateBudget(ctx context.Context, amount decimal.Decimal) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !core.ValidAmount(amount) {
		return s.reject(ctx, "Invalid budget amount", core.ErrInvalidAmount)
	}

	next := s.snap.Clone()
	next.MonthlyLimit = amount
	s.commit(ctx, next, "update_budget", applog.FieldAmount, amount.String())
	return next.Clone(), nil
}

// ProfileUpdate carries the permitted profile fields; nil means unchanged.
type ProfileUpdate struct {
	UserName     *string
	UserEmail    *string
	ProfileImage *string
}

// UpdateProfile shallow-merges the provided fields into the snapshot.
func (s *Store) UpdateProfile(ctx context.Context, up ProfileUpdate) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if up.UserName != nil {
		next.UserName = *up.UserName
	}
	if up.UserEmail != nil {
		next.UserEmail = *up.UserEmail
	}
	if up.ProfileImage != nil {
		next.ProfileImage = *up.ProfileImage
	}

	s.commit(ctx, next, "update_profile")
	return next.Clone(), nil
}

// SettingsUpdate carries the permitted settings fields; nil means unchanged.
type SettingsUpdate struct {
	Theme         *string
	Notifications *bool
	AutoBackup    *bool
	Currency      *string
}

// UpdateSettings shallow-merges the provided fields into the settings block.
func (s *Store) UpdateSettings(ctx context.Context, up SettingsUpdate) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if up.Theme != nil {
		next.Settings.Theme = *up.Theme
	}
	if up.Notifications != nil {
		next.Settings.Notifications = *up.Notifications
	}
	if up.AutoBackup != nil {
		next.Settings.AutoBackup = *up.AutoBackup
	}
	if up.Currency != nil {
		next.Settings.Currency = *up.Currency
	}

	s.commit(ctx, next, "update_settings")
	return next.Clone(), nil
}

// AddReminder creates an enabled, untriggered reminder.
func (s *Store) AddReminder(ctx context.Context, title string, freq core.Frequency, anchor core.Date, timeOfDay string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rem := core.Reminder{
		ID:        s.newID(),
		Title:     title,
		Frequency: freq,
		Date:      anchor,
		Time:      timeOfDay,
		Enabled:   true,
		Triggered: false,
	}
	if err := rem.Validate(); err != nil {
		return s.reject(ctx, "Invalid reminder", err)
	}

	next := s.snap.Clone()
	next.Reminders = append(next.Reminders, rem)

	s.commit(ctx, next, "add_reminder",
		applog.FieldReminderID, rem.ID,
		applog.FieldReminderTitle, rem.Title,
		applog.FieldFrequency, string(rem.Frequency))
	return next.Clone(), nil
}

// ToggleReminder flips Enabled. It deliberately does not touch Triggered.
func (s *Store) ToggleReminder(ctx context.Context, id string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := reminderIndex(next.Reminders, id)
	if idx < 0 {
		return s.snap.Clone(), ErrReminderNotFound
	}
	next.Reminders[idx].Enabled = !next.Reminders[idx].Enabled

	s.commit(ctx, next, "toggle_reminder", applog.FieldReminderID, id)
	return next.Clone(), nil
}

// DeleteReminder removes the reminder. An unknown ID is a no-op.
func (s *Store) DeleteReminder(ctx context.Context, id string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := reminderIndex(next.Reminders, id)
	if idx < 0 {
		return s.snap.Clone(), ErrReminderNotFound
	}
	next.Reminders = append(next.Reminders[:idx], next.Reminders[idx+1:]...)

	s.commit(ctx, next, "delete_reminder", applog.FieldReminderID, id)
	return next.Clone(), nil
}

// FireReminder marks the reminder triggered and appends the in-app
// notification. The scheduler calls this after invoking the alerter;
// one-time reminders are also disabled so a later trigger reset cannot
// refire them.
func (s *Store) FireReminder(ctx context.Context, id string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := reminderIndex(next.Reminders, id)
	if idx < 0 {
		return s.snap.Clone(), ErrReminderNotFound
	}
	rem := &next.Reminders[idx]
	rem.Triggered = true
	if rem.Frequency.Validate() != nil || rem.Frequency == core.OneTime {
		rem.Enabled = false
	}
	s.appendNotification(&next, "Reminder: "+rem.Title, core.NotifReminder)

	s.commit(ctx, next, "fire_reminder",
		applog.FieldReminderID, id,
		applog.FieldReminderTitle, rem.Title)
	return next.Clone(), nil
}

// ClearTrigger resets Triggered once the reminder's minute has passed, so a
// recurring reminder can fire again on its next matching occurrence.
func (s *Store) ClearTrigger(ctx context.Context, id string) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := reminderIndex(next.Reminders, id)
	if idx < 0 {
		return s.snap.Clone(), ErrReminderNotFound
	}
	next.Reminders[idx].Triggered = false

	s.commit(ctx, next, "clear_trigger", applog.FieldReminderID, id)
	return next.Clone(), nil
}

// MarkNotificationsRead flips every notification to read and clears the
// unread flag. The notifications screen calls this when opened.
func (s *Store) MarkNotificationsRead(ctx context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	for i := range next.Notifications {
		next.Notifications[i].Read = true
	}
	next.UnreadNotifications = false

	s.commit(ctx, next, "mark_notifications_read")
	return next.Clone(), nil
}

// ImportLedger parses raw and, if the document passes the structural gate,
// replaces the entire snapshot. Rejected documents leave the ledger
// untouched. The imported snapshot is migrated to the current shape and
// rolled over before it becomes authoritative.
func (s *Store) ImportLedger(ctx context.Context, raw []byte) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported, err := export.ParseImport(raw)
	if err != nil {
		return s.reject(ctx, "Invalid import file format", err)
	}

	now := s.now()
	next := Migrate(imported, now)
	next, _ = Rollover(next, now)
	s.appendNotification(&next, "Data imported successfully!", core.NotifSuccess)

	s.commit(ctx, next, applog.OpImport)
	return next.Clone(), nil
}

// reject appends an error notification without touching ledger state.
// Must be called with the mutex held.
func (s *Store) reject(ctx context.Context, text string, cause error) (core.Snapshot, error) {
	next := s.snap.Clone()
	s.appendNotification(&next, text, core.NotifError)
	s.commit(ctx, next, applog.OpValidate, applog.FieldError, cause.Error())
	return next.Clone(), cause
}

// appendNotification prepends a notification, keeping the feed bounded.
func (s *Store) appendNotification(snap *core.Snapshot, text string, typ core.NotificationType) {
	n := core.Notification{
		ID:        s.newID(),
		Text:      text,
		Type:      typ,
		Timestamp: s.now(),
		Read:      false,
	}
	snap.Notifications = append([]core.Notification{n}, snap.Notifications...)
	if len(snap.Notifications) > core.NotificationCap {
		snap.Notifications = snap.Notifications[:core.NotificationCap]
	}
	snap.UnreadNotifications = true
}

// commit swaps in the new snapshot and persists it. Persistence failures
// are recovered locally: the in-memory snapshot stays authoritative and an
// error notification is appended for the user.
func (s *Store) commit(ctx context.Context, next core.Snapshot, op string, args ...any) {
	s.snap = next
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, s.snap.Clone()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist snapshot",
			append([]any{applog.FieldOperation, op, applog.FieldError, err.Error()}, args...)...)
		failed := s.snap.Clone()
		s.appendNotification(&failed, "Failed to save data. Please check your storage space.", core.NotifError)
		s.snap = failed
		return
	}
	s.logger.DebugContext(ctx, "Snapshot persisted",
		append([]any{applog.FieldOperation, op}, args...)...)
}

func goalIndex(goals []core.SavingsGoal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func reminderIndex(reminders []core.Reminder, id string) int {
	for i, r := range reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func clampZero(n decimal.Decimal) decimal.Decimal {
	if n.IsNegative() {
		return decimal.Zero
	}
	return n
}
