package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:              "t1",
		Amount:          decimal.NewFromInt(100),
		TransactionType: Expense,
		Category:        "Food & Dining",
		PaymentMethod:   "Cash",
		Date:            NewDate(2024, 1, 15),
	}

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{
			name:    "valid expense",
			mutate:  func(tx *Transaction) {},
			wantErr: nil,
		},
		{
			name:    "valid income",
			mutate:  func(tx *Transaction) { tx.TransactionType = Income },
			wantErr: nil,
		},
		{
			name:    "zero amount",
			mutate:  func(tx *Transaction) { tx.Amount = decimal.Zero },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-5) },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "amount at upper bound",
			mutate:  func(tx *Transaction) { tx.Amount = decimal.NewFromInt(1_000_000) },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "empty category",
			mutate:  func(tx *Transaction) { tx.Category = "   " },
			wantErr: ErrInvalidText,
		},
		{
			name: "category too long",
			mutate: func(tx *Transaction) {
				tx.Category = "this category name is far far far too long to be accepted"
			},
			wantErr: ErrInvalidText,
		},
		{
			name:    "unknown type",
			mutate:  func(tx *Transaction) { tx.TransactionType = "transfer" },
			wantErr: ErrInvalidType,
		},
		{
			name:    "zero date",
			mutate:  func(tx *Transaction) { tx.Date = Date{} },
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReminderValidate(t *testing.T) {
	valid := Reminder{
		ID:        "r1",
		Title:     "Pay rent",
		Frequency: Monthly,
		Date:      NewDate(2024, 1, 15),
		Time:      "09:00",
		Enabled:   true,
	}

	tests := []struct {
		name    string
		mutate  func(r *Reminder)
		wantErr error
	}{
		{"valid", func(r *Reminder) {}, nil},
		{"empty title", func(r *Reminder) { r.Title = "" }, ErrInvalidText},
		{"bad frequency", func(r *Reminder) { r.Frequency = "Hourly" }, ErrInvalidFrequency},
		{"zero anchor date", func(r *Reminder) { r.Date = Date{} }, ErrInvalidDate},
		{"unpadded time", func(r *Reminder) { r.Time = "9:00" }, ErrInvalidTime},
		{"out of range time", func(r *Reminder) { r.Time = "25:00" }, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidText(t *testing.T) {
	tests := []struct {
		name string
		s    string
		min  int
		max  int
		want bool
	}{
		{"single char", "a", 1, 50, true},
		{"empty", "", 1, 50, false},
		{"whitespace only", "   ", 1, 50, false},
		{"at max", strings.Repeat("a", 50), 1, 50, true},
		{"over max", strings.Repeat("a", 51), 1, 50, false},
		{"trimmed within max", " " + strings.Repeat("a", 50) + " ", 1, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidText(tt.s, tt.min, tt.max); got != tt.want {
				t.Errorf("ValidText(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 29)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2024-02-29"` {
		t.Errorf("Marshal() = %s, want %q", b, "2024-02-29")
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateUnmarshalTimestamp(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-01T10:30:00Z"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Year() != 2024 || d.Time.Month() != time.March || d.Day() != 1 {
		t.Errorf("Unmarshal() = %v, want 2024-03-01", d)
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	snap := DefaultSnapshot(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	snap.Entries = []Transaction{{ID: "t1", Category: "Food"}}
	snap.Savings.Goals = []SavingsGoal{{ID: "g1", Name: "Laptop"}}

	clone := snap.Clone()
	clone.Entries[0].Category = "Travel"
	clone.Savings.Goals[0].Name = "Phone"

	if snap.Entries[0].Category != "Food" {
		t.Error("Clone() aliases Entries")
	}
	if snap.Savings.Goals[0].Name != "Laptop" {
		t.Error("Clone() aliases Savings.Goals")
	}
}

func TestNormalizeIcon(t *testing.T) {
	if got := NormalizeIcon(IconLaptop); got != IconLaptop {
		t.Errorf("NormalizeIcon(laptop) = %v, want laptop", got)
	}
	if got := NormalizeIcon(Icon("✈️")); got != IconOther {
		t.Errorf("NormalizeIcon(emoji) = %v, want other", got)
	}
}

func TestDefaultSnapshot(t *testing.T) {
	now := time.Date(2024, 7, 3, 12, 0, 0, 0, time.UTC)
	snap := DefaultSnapshot(now)

	if !snap.MonthlyLimit.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("MonthlyLimit = %v, want 8000", snap.MonthlyLimit)
	}
	if !snap.Savings.MonthlyGoal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Savings.MonthlyGoal = %v, want 1000", snap.Savings.MonthlyGoal)
	}
	if snap.LastReset != "2024-07" {
		t.Errorf("LastReset = %q, want 2024-07", snap.LastReset)
	}
	if snap.Entries == nil || snap.Savings.Goals == nil || snap.Reminders == nil || snap.Notifications == nil {
		t.Error("collections must be empty, not nil")
	}
}
