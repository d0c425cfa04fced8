package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"dot separator", "12.34", "12.34", false},
		{"comma separator", "12,34", "12.34", false},
		{"integer", "500", "500", false},
		{"leading whitespace", "  42.50", "42.5", false},
		{"empty", "", "", true},
		{"non numeric", "abc", "", true},
		{"zero", "0", "", true},
		{"negative", "-10", "", true},
		{"at limit", "1000000", "", true},
		{"just under limit", "999999.99", "999999.99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, want)
			}
		})
	}
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name string
		n    decimal.Decimal
		want bool
	}{
		{"positive", decimal.NewFromInt(100), true},
		{"smallest cent", decimal.RequireFromString("0.01"), true},
		{"zero", decimal.Zero, false},
		{"negative", decimal.NewFromInt(-1), false},
		{"at bound", decimal.NewFromInt(1_000_000), false},
		{"below bound", decimal.RequireFromString("999999.99"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAmount(tt.n); got != tt.want {
				t.Errorf("ValidAmount(%v) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("1234.5")); got != "$1234.50" {
		t.Errorf("FormatAmount() = %q, want $1234.50", got)
	}
}
