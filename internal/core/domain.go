package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Daily   Frequency = "Daily"
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
	Yearly  Frequency = "Yearly"
	OneTime Frequency = "OneTime"
)

const (
	NotifInfo     NotificationType = "info"
	NotifSuccess  NotificationType = "success"
	NotifError    NotificationType = "error"
	NotifReminder NotificationType = "reminder"
)

// NotificationCap bounds the notification feed to the most recent entries.
const NotificationCap = 50

// SnapshotVersion is the current snapshot document version.
const SnapshotVersion = "2.0.0"

type (
	TransactionType  string
	Frequency        string
	NotificationType string

	Date struct {
		time.Time
	}

	// Transaction is an immutable ledger entry. It is never mutated after
	// creation; entries only change via a full snapshot replacement.
	Transaction struct {
		ID              string          `json:"id"`
		Amount          decimal.Decimal `json:"amount"`
		TransactionType TransactionType `json:"transactionType"`
		Category        string          `json:"category"`
		Description     string          `json:"description,omitempty"`
		PaymentMethod   string          `json:"paymentMethod"`
		Date            Date            `json:"date"`
		CreatedAt       time.Time       `json:"createdAt"`
	}

	SavingsGoal struct {
		ID                   string          `json:"id"`
		Name                 string          `json:"name"`
		Target               decimal.Decimal `json:"target"`
		Current              decimal.Decimal `json:"current"`
		MonthlyContributions decimal.Decimal `json:"monthlyContributions"`
		Icon                 Icon            `json:"icon"`
	}

	// Savings aggregates goal-independent savings with per-goal balances.
	// Current tracks all money ever put toward any goal or general savings,
	// so a goal contribution raises both the goal and the aggregate.
	Savings struct {
		Current              decimal.Decimal `json:"current"`
		MonthlyGoal          decimal.Decimal `json:"monthlyGoal"`
		MonthlyContributions decimal.Decimal `json:"monthlyContributions"`
		Goals                []SavingsGoal   `json:"goals"`
	}

	// Reminder is evaluated by the scheduler while Enabled is true.
	// Triggered marks that the current occurrence already fired.
	Reminder struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Frequency Frequency `json:"frequency"`
		Date      Date      `json:"date"`
		Time      string    `json:"time"` // HH:MM, zero-padded 24-hour
		Enabled   bool      `json:"enabled"`
		Triggered bool      `json:"triggered"`
	}

	Notification struct {
		ID        string           `json:"id"`
		Text      string           `json:"text"`
		Type      NotificationType `json:"type"`
		Timestamp time.Time        `json:"timestamp"`
		Read      bool             `json:"read"`
	}

	Settings struct {
		Theme         string `json:"theme"`
		Notifications bool   `json:"notifications"`
		AutoBackup    bool   `json:"autoBackup"`
		Currency      string `json:"currency"`
	}

	// Snapshot is one immutable value of the whole ledger. All mutation goes
	// through the ledger store, which clones before changing anything.
	Snapshot struct {
		ProfileImage        string          `json:"profileImage"`
		UserName            string          `json:"userName"`
		UserEmail           string          `json:"userEmail"`
		Currency            string          `json:"currency"`
		TotalSalary         decimal.Decimal `json:"totalSalary"`
		TotalExpense        decimal.Decimal `json:"totalExpense"`
		MonthlyLimit        decimal.Decimal `json:"monthlyLimit"`
		Entries             []Transaction   `json:"entries"`
		Savings             Savings         `json:"savings"`
		Reminders           []Reminder      `json:"reminders"`
		Notifications       []Notification  `json:"notifications"`
		UnreadNotifications bool            `json:"unreadNotifications"`
		Settings            Settings        `json:"settings"`
		LastReset           string          `json:"lastReset"` // YYYY-MM of last rollover
		Version             string          `json:"version"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidText      = errors.New("invalid text")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time of day")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidType      = errors.New("invalid transaction type")
)

func init() {
	// Snapshot documents carry amounts as JSON numbers; the import gate
	// requires totalSalary and totalExpense to be numeric tokens.
	decimal.MarshalJSONWithoutQuotes = true
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Accept plain dates and full timestamps; older exports stored both.
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return ErrInvalidDate
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameCalendarDay reports whether d falls on the given wall-clock day.
func (d Date) SameCalendarDay(t time.Time) bool {
	return d.Year() == t.Year() && d.Time.Month() == t.Month() && d.Day() == t.Day()
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Daily, Weekly, Monthly, Yearly, OneTime:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (t Transaction) Validate() error {
	if err := t.TransactionType.Validate(); err != nil {
		return err
	}
	if !ValidAmount(t.Amount) {
		return ErrInvalidAmount
	}
	if !ValidText(t.Category, 1, 50) {
		return ErrInvalidText
	}
	return t.Date.Validate()
}

func (g SavingsGoal) Validate() error {
	if !ValidText(g.Name, 1, 50) {
		return ErrInvalidText
	}
	if !ValidAmount(g.Target) {
		return ErrInvalidAmount
	}
	return nil
}

func (r Reminder) Validate() error {
	if !ValidText(r.Title, 1, 50) {
		return ErrInvalidText
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if !ValidTimeOfDay(r.Time) {
		return ErrInvalidTime
	}
	return nil
}

// ValidText reports whether the trimmed length of s is within [min, max].
func ValidText(s string, min, max int) bool {
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}

// ValidTimeOfDay reports whether s is a zero-padded 24-hour HH:MM value.
func ValidTimeOfDay(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Clone returns a deep copy of the snapshot. Readers always get clones so
// no caller can alias the store's internal collections.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Entries = append([]Transaction(nil), s.Entries...)
	out.Savings.Goals = append([]SavingsGoal(nil), s.Savings.Goals...)
	out.Reminders = append([]Reminder(nil), s.Reminders...)
	out.Notifications = append([]Notification(nil), s.Notifications...)
	return out
}

// DefaultSnapshot is the snapshot used when the local store holds nothing.
func DefaultSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Currency:     "USD",
		TotalSalary:  decimal.Zero,
		TotalExpense: decimal.Zero,
		MonthlyLimit: decimal.NewFromInt(8000),
		Entries:      []Transaction{},
		Savings: Savings{
			Current:              decimal.Zero,
			MonthlyGoal:          decimal.NewFromInt(1000),
			MonthlyContributions: decimal.Zero,
			Goals:                []SavingsGoal{},
		},
		Reminders:     []Reminder{},
		Notifications: []Notification{},
		Settings: Settings{
			Theme:         "light",
			Notifications: true,
			AutoBackup:    true,
			Currency:      "USD",
		},
		LastReset: now.Format("2006-01"),
		Version:   SnapshotVersion,
	}
}
