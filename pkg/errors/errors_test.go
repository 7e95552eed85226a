package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewDataError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		err      error
		wantMsg  string
		sentinel error
	}{
		{
			name:     "empty dataset",
			op:       "FitScaler",
			err:      ErrEmptyData,
			wantMsg:  "ftlinear: FitScaler: data error: empty data",
			sentinel: ErrEmptyData,
		},
		{
			name:     "wrapped malformed record",
			op:       "DatasetFile.Load",
			err:      Wrapf(ErrMalformedRecord, "line %d", 3),
			wantMsg:  "ftlinear: DatasetFile.Load: data error: line 3: malformed record",
			sentinel: ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDataError(tt.op, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var dataErr *DataError
			if !As(err, &dataErr) {
				t.Error("Error should be castable to *DataError")
			}
			if !Is(err, tt.sentinel) {
				t.Errorf("Is(err, %v) = false", tt.sentinel)
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("learning_rate", "must be positive", -0.5)

	want := "ftlinear: invalid configuration for parameter 'learning_rate': must be positive (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Fatal("Error should be castable to *ConfigError")
	}
	if cfgErr.ParamName != "learning_rate" {
		t.Errorf("ParamName = %q", cfgErr.ParamName)
	}
}

func TestNewStoreError(t *testing.T) {
	err := NewStoreError("WeightFile.Save", "/tmp/weights.csv", fmt.Errorf("permission denied"))

	want := "ftlinear: WeightFile.Save /tmp/weights.csv: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	notFound := NewStoreError("DatasetFile.Load", "data.csv", ErrNotFound)
	if !Is(notFound, ErrNotFound) {
		t.Error("Expected Is(err, ErrNotFound) to be true")
	}
	var storeErr *StoreError
	if !As(notFound, &storeErr) {
		t.Error("Error should be castable to *StoreError")
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := NewDataError("FitScaler", ErrZeroVariance)

	var cfgErr *ConfigError
	if As(err, &cfgErr) {
		t.Error("DataError must not be castable to *ConfigError")
	}
	var storeErr *StoreError
	if As(err, &storeErr) {
		t.Error("DataError must not be castable to *StoreError")
	}
	if Is(err, ErrEmptyData) {
		t.Error("zero variance must not match ErrEmptyData")
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().EmbedObject(&ConfigError{ParamName: "batch", Reason: "must be positive", Value: 0}).Msg("invalid")

	out := buf.String()
	for _, want := range []string{`"param_name":"batch"`, `"type":"ConfigError"`, `"reason":"must be positive"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s does not contain %s", out, want)
		}
	}
}

func TestWarnRoutesToZerologFunc(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	w := NewConfigAdjustedWarning("batch", 10, 5, "batch exceeds iterations")
	Warn(w)

	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	want := "parameter 'batch' adjusted from 10 to 5: batch exceeds iterations"
	if got[0].Error() != want {
		t.Errorf("warning = %q, want %q", got[0].Error(), want)
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	prev := warningHandler
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(prev)

	Warn(NewConfigAdjustedWarning("batch", 7, 3, "test"))
	if got == nil {
		t.Fatal("expected handler to receive the warning")
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("theta0", 1.5, 10); err != nil {
		t.Errorf("finite value should pass, got %v", err)
	}

	err := CheckScalar("theta1", math.Inf(1), 10)
	var instab *NumericalInstabilityError
	if !As(err, &instab) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if instab.Iteration != 10 || instab.Operation != "theta1" {
		t.Errorf("unexpected fields: %+v", instab)
	}

	if err := CheckNumericalStability("params", []float64{0, math.NaN()}, 3); err == nil {
		t.Error("NaN should be reported")
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in FitScaler")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in FitScaler") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}
