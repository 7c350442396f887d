package inventory

import (
	"errors"
	"testing"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name    string
		current int
		ttype   TxType
		qty     int
		want    int
		wantErr bool
	}{
		{"in adds", 5, TxIn, 20, 25, false},
		{"out subtracts", 25, TxOut, 10, 15, false},
		{"out to zero", 10, TxOut, 10, 0, false},
		{"out below zero rejected", 5, TxOut, 6, 0, true},
		{"zero quantity rejected", 5, TxIn, 0, 0, true},
		{"negative quantity rejected", 5, TxOut, -3, 0, true},
		{"unknown type rejected", 5, TxType("SIDEWAYS"), 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextQuantity(tt.current, tt.ttype, tt.qty)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				if !errors.Is(err, errs.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsDamageWriteOff(t *testing.T) {
	if !IsDamageWriteOff(TxOut, DamagedReason) {
		t.Error("OUT with the damaged reason must classify")
	}
	if IsDamageWriteOff(TxIn, DamagedReason) {
		t.Error("IN never classifies, whatever the reason")
	}
	if IsDamageWriteOff(TxOut, "Sold") {
		t.Error("other OUT reasons must not classify")
	}
	if IsDamageWriteOff(TxOut, "damaged/discarded") {
		t.Error("reason match is exact, not case-insensitive")
	}
}

func TestBelowReorder(t *testing.T) {
	if !BelowReorder(10, 10) {
		t.Error("quantity equal to the threshold counts as a breach")
	}
	if !BelowReorder(3, 10) {
		t.Error("quantity under the threshold counts as a breach")
	}
	if BelowReorder(11, 10) {
		t.Error("quantity above the threshold is healthy")
	}
}
