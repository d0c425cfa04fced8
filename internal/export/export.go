// Package export serializes ledger snapshots at the file boundary: the
// import gate, the JSON export document and the CSV transaction dump.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// document is the JSON export shape: the full snapshot plus export
// metadata.
type document struct {
	core.Snapshot
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// JSON renders the full snapshot with exportDate and version fields.
// The output passes ParseImport unchanged, so export/import round-trips.
func JSON(snap core.Snapshot, now time.Time) ([]byte, error) {
	doc := document{
		Snapshot:   snap,
		ExportDate: now.UTC(),
		Version:    snap.Version,
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return out, nil
}

// CSVHeader is the column order of the CSV export.
var CSVHeader = []string{"Date", "Type", "Category", "Amount", "Description", "Payment Method"}

// CSV renders one row per transaction in ledger order (newest first, no
// re-sorting). Fields are quoted per RFC 4180, so embedded commas in
// descriptions or categories survive.
func CSV(snap core.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range snap.Entries {
		row := []string{
			e.Date.Format("2006-01-02"),
			string(e.TransactionType),
			e.Category,
			e.Amount.String(),
			e.Description,
			e.PaymentMethod,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
