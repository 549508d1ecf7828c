package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaiseFromRupees(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"250.75", 25075, false},
		{"-1.5", -150, false},
		{"0.001", 0, true},
		{"184467440737095016.16", 0, true},
		{"-184467440737095016.16", 0, true},
		{"-92233720368547758.07", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := PaiseFromRupees(decimal.RequireFromString(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRupeesFromPaise(t *testing.T) {
	if got := RupeesFromPaise(3250); got != "32.50" {
		t.Fatalf("expected 32.50, got %s", got)
	}
	if got := RupeesFromPaise(-5); got != "-0.05" {
		t.Fatalf("expected -0.05, got %s", got)
	}
}
