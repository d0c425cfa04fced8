package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func sampleSnapshot() core.Snapshot {
	snap := core.DefaultSnapshot(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	snap.TotalSalary = decimal.NewFromInt(1000)
	snap.TotalExpense = decimal.NewFromInt(250)
	snap.Entries = []core.Transaction{
		{
			ID:              "t1",
			Amount:          decimal.RequireFromString("250"),
			TransactionType: core.Expense,
			Category:        "Food, drinks & snacks",
			Description:     `He said "hi", then left`,
			PaymentMethod:   "Cash",
			Date:            core.NewDate(2024, 3, 10),
		},
		{
			ID:              "t2",
			Amount:          decimal.RequireFromString("1000"),
			TransactionType: core.Income,
			Category:        "Salary",
			PaymentMethod:   "Bank Transfer",
			Date:            core.NewDate(2024, 3, 1),
		},
	}
	return snap
}

func TestJSONExportRoundTripsThroughImport(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	out, err := JSON(sampleSnapshot(), now)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	// Export metadata is present.
	var meta struct {
		ExportDate time.Time `json:"exportDate"`
		Version    string    `json:"version"`
	}
	if err := json.Unmarshal(out, &meta); err != nil {
		t.Fatalf("unmarshal export metadata: %v", err)
	}
	if !meta.ExportDate.Equal(now) {
		t.Errorf("exportDate = %v, want %v", meta.ExportDate, now)
	}
	if meta.Version != core.SnapshotVersion {
		t.Errorf("version = %q, want %q", meta.Version, core.SnapshotVersion)
	}

	// An exported document must pass the import gate unchanged.
	snap, err := ParseImport(out)
	if err != nil {
		t.Fatalf("ParseImport(exported) error = %v", err)
	}
	if !snap.TotalSalary.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("round-trip TotalSalary = %v, want 1000", snap.TotalSalary)
	}
	if len(snap.Entries) != 2 {
		t.Errorf("round-trip entries = %d, want 2", len(snap.Entries))
	}
}

func TestCSVQuotesEmbeddedCommas(t *testing.T) {
	out, err := CSV(sampleSnapshot())
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")

	if lines[0] != "Date,Type,Category,Amount,Description,Payment Method" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	// Ledger order, no re-sorting: t1 first.
	if !strings.HasPrefix(lines[1], "2024-03-10,expense,") {
		t.Errorf("row 1 = %q, want the newest entry first", lines[1])
	}
	// The comma-laden category must be quoted, keeping the column count.
	if !strings.Contains(lines[1], `"Food, drinks & snacks"`) {
		t.Errorf("row 1 = %q, want quoted category", lines[1])
	}
	// Re-parse with the csv reader: quoting must have preserved the
	// six-column structure.
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("re-parse exported csv: %v", err)
	}
	for i, rec := range records {
		if len(rec) != 6 {
			t.Errorf("record %d has %d fields, want 6", i, len(rec))
		}
	}
}

func TestParseImportGate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name:    "minimal valid document",
			raw:     `{"totalSalary": 10, "totalExpense": 2, "entries": []}`,
			wantErr: false,
		},
		{
			name:    "missing everything",
			raw:     `{"foo": 1}`,
			wantErr: true,
		},
		{
			name:    "string totalSalary",
			raw:     `{"totalSalary": "10", "totalExpense": 2, "entries": []}`,
			wantErr: true,
		},
		{
			name:    "entries not an array",
			raw:     `{"totalSalary": 10, "totalExpense": 2, "entries": {}}`,
			wantErr: true,
		},
		{
			name:    "missing totalExpense",
			raw:     `{"totalSalary": 10, "entries": []}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			raw:     `this is not json`,
			wantErr: true,
		},
		{
			name:    "json array root",
			raw:     `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImport([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseImport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseImport() error = %v, want wrapped ErrInvalidFormat", err)
			}
		})
	}
}
