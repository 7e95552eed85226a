package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/YuminosukeSato/ftlinear/training"
)

// ProgressTable is a training.ProgressSink that prints one row per batch as
// soon as it is reported. Column widths are fixed so rows line up without
// buffering.
type ProgressTable struct {
	w       io.Writer
	started bool
}

// NewProgressTable returns a ProgressTable writing to w.
func NewProgressTable(w io.Writer) *ProgressTable {
	return &ProgressTable{w: w}
}

const progressRow = "| %7v | %10v | %18v |\n"

// Report implements training.ProgressSink. Write errors are ignored.
func (t *ProgressTable) Report(p training.Progress) {
	if !t.started {
		t.started = true
		sep := "+" + strings.Repeat("-", 9) + "+" + strings.Repeat("-", 12) + "+" + strings.Repeat("-", 20) + "+\n"
		fmt.Fprint(t.w, sep)
		fmt.Fprintf(t.w, progressRow, "Batch", "Iterations", "MSE")
		fmt.Fprint(t.w, sep)
	}
	fmt.Fprintf(t.w, progressRow, p.Batch, p.Iterations, fmt.Sprintf("%.4f", p.Metric))
}
