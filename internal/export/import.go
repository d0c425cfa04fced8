package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"fintrack/internal/core"
)

// ErrInvalidFormat marks an import document that fails the structural gate.
var ErrInvalidFormat = errors.New("invalid import format")

// ParseImport validates and decodes an import document. A document is
// accepted iff it carries a numeric totalSalary, a numeric totalExpense and
// an array-typed entries field; anything else is rejected before any ledger
// state is touched.
func ParseImport(raw []byte) (core.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var salary, expense json.Number
	if v, ok := fields["totalSalary"]; !ok || json.Unmarshal(v, &salary) != nil {
		return core.Snapshot{}, fmt.Errorf("%w: totalSalary must be a number", ErrInvalidFormat)
	}
	if v, ok := fields["totalExpense"]; !ok || json.Unmarshal(v, &expense) != nil {
		return core.Snapshot{}, fmt.Errorf("%w: totalExpense must be a number", ErrInvalidFormat)
	}
	var entries []json.RawMessage
	if v, ok := fields["entries"]; !ok || json.Unmarshal(v, &entries) != nil {
		return core.Snapshot{}, fmt.Errorf("%w: entries must be an array", ErrInvalidFormat)
	}

	var snap core.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return snap, nil
}
