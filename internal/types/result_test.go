package types

import (
	"testing"

	"gorm.io/datatypes"
)

func TestValidateSeriesLengthsAgreeing(t *testing.T) {
	r := &Result{
		Time:         datatypes.JSONSlice[float64]{0, 0.1, 0.2},
		Theta1Series: datatypes.JSONSlice[float64]{1, 2, 3},
		X1:           datatypes.JSONSlice[float64]{0.1, 0.2, 0.3},
	}
	if err := r.ValidateSeriesLengths(); err != nil {
		t.Fatalf("expected agreeing series to validate: %v", err)
	}
}

func TestValidateSeriesLengthsMismatch(t *testing.T) {
	r := &Result{
		Time:         datatypes.JSONSlice[float64]{0, 0.1, 0.2},
		Theta1Series: datatypes.JSONSlice[float64]{1, 2},
	}
	if err := r.ValidateSeriesLengths(); err == nil {
		t.Fatalf("expected mismatched series to fail validation")
	}
}

func TestValidateSeriesLengthsEmptySeriesAllowed(t *testing.T) {
	r := &Result{
		Time: datatypes.JSONSlice[float64]{0, 0.1, 0.2},
	}
	if err := r.ValidateSeriesLengths(); err != nil {
		t.Fatalf("empty series should be skipped: %v", err)
	}
}

func TestValidateSeriesLengthsAllEmpty(t *testing.T) {
	if err := (&Result{}).ValidateSeriesLengths(); err != nil {
		t.Fatalf("record with no series should validate: %v", err)
	}
}
