// Package report renders training state for a terminal: aligned tables,
// a live progress table and PNG charts.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/training"
)

// Table writes tab-aligned rows with a header and a separator line.
type Table struct {
	tw      *tabwriter.Writer
	columns int
}

// NewTable writes the header immediately. Rows are aligned on Flush.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{
		tw:      tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug),
		columns: len(headers),
	}
	t.Row(headers...)
	seps := make([]string, len(headers))
	for i, h := range headers {
		seps[i] = strings.Repeat("-", len(h))
	}
	t.Row(seps...)
	return t
}

// Row appends one row. Missing cells are left blank.
func (t *Table) Row(cells ...string) {
	out := make([]string, t.columns)
	copy(out, cells)
	fmt.Fprintln(t.tw, strings.Join(out, "\t")+"\t")
}

// Flush aligns and writes the buffered rows.
func (t *Table) Flush() error {
	return t.tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteWeights prints the parameter record.
func WriteWeights(w io.Writer, p model.Parameters) error {
	t := NewTable(w, "theta0", "theta1")
	t.Row(formatFloat(p.Theta0), formatFloat(p.Theta1))
	return t.Flush()
}

// WriteConfig prints the training parameters.
func WriteConfig(w io.Writer, cfg model.TrainingConfig) error {
	t := NewTable(w, "Learning rate", "Iterations", "Batch")
	t.Row(formatFloat(cfg.LearningRate), strconv.Itoa(cfg.Iterations), strconv.Itoa(cfg.Batch))
	return t.Flush()
}

// ComparisonRow is a Comparison rounded for display: the prediction to a
// whole price, the accuracy to two decimals.
type ComparisonRow struct {
	Km        decimal.Decimal
	Price     decimal.Decimal
	Predicted decimal.Decimal
	Accuracy  decimal.Decimal
	// Valid is false when a value was NaN or infinite and could not be rounded.
	Valid bool
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ComparisonRows rounds each comparison.
func ComparisonRows(rows []training.Comparison) []ComparisonRow {
	out := make([]ComparisonRow, len(rows))
	for i, r := range rows {
		out[i] = ComparisonRow{
			Km:    decimal.NewFromFloat(r.Feature),
			Price: decimal.NewFromFloat(r.Target),
		}
		// decimal.NewFromFloat panics on NaN/Inf
		if !finite(r.Predicted, r.Accuracy) {
			continue
		}
		out[i].Predicted = decimal.NewFromFloat(r.Predicted).Round(0)
		out[i].Accuracy = decimal.NewFromFloat(r.Accuracy).Round(2)
		out[i].Valid = true
	}
	return out
}

// WriteComparison prints km, price, predicted and accuracy (%) per record.
func WriteComparison(w io.Writer, rows []training.Comparison) error {
	t := NewTable(w, "km", "price", "predicted", "accuracy (%)")
	for _, r := range ComparisonRows(rows) {
		if !r.Valid {
			t.Row(r.Km.String(), r.Price.String(), "n/a", "n/a")
			continue
		}
		t.Row(r.Km.String(), r.Price.String(), r.Predicted.String(), r.Accuracy.StringFixed(2))
	}
	return t.Flush()
}

// PrecisionPercent converts R² to a whole percentage.
func PrecisionPercent(r2 float64) decimal.Decimal {
	if !finite(r2) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(r2 * 100).Round(0)
}

// WriteEvaluation prints the diagnostic metrics and the closed-form optimum.
func WriteEvaluation(w io.Writer, ev *training.Evaluation) error {
	t := NewTable(w, "metric", "value")
	t.Row("samples", strconv.Itoa(ev.Samples))
	t.Row("km mean", formatFloat(ev.Stats.Mean))
	t.Row("km std dev", formatFloat(ev.Stats.StdDev))
	t.Row("theta0", formatFloat(ev.Params.Theta0))
	t.Row("theta1", formatFloat(ev.Params.Theta1))
	t.Row("mean abs error", formatFloat(ev.Metric))
	t.Row("mean squared error", formatFloat(ev.SquaredError))
	t.Row("R² (%)", PrecisionPercent(ev.RSquared).String())
	t.Row("optimum theta0", formatFloat(ev.Optimum.Theta0))
	t.Row("optimum theta1", formatFloat(ev.Optimum.Theta1))
	return t.Flush()
}

// WriteMenu prints numbered options, starting at 1.
func WriteMenu(w io.Writer, options []string) error {
	t := NewTable(w, "#", "Menu")
	for i, opt := range options {
		t.Row(strconv.Itoa(i+1), opt)
	}
	return t.Flush()
}

// FormatPrice rounds a price to a whole number.
func FormatPrice(v float64) string {
	if !finite(v) {
		return formatFloat(v)
	}
	return decimal.NewFromFloat(v).Round(0).String()
}
