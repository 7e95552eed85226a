package report

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/linear"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/training"
)

// ChartMargin is the share of the data range added on each side of the axes.
const ChartMargin = 0.1

// Default PNG size.
const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 5 * vg.Inch
)

var (
	pointColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	lineColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func padded(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * ChartMargin
	return lo - pad, hi + pad
}

// RegressionChart plots the dataset (mileage against price) and the fitted
// line across the padded mileage range.
func RegressionChart(ds *model.Dataset, reg *linear.Regression) (*plot.Plot, error) {
	points := make(plotter.XYs, ds.Len())
	yLo, yHi := ds.At(0).Target, ds.At(0).Target
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		points[i].X, points[i].Y = r.Feature, r.Target
		yLo, yHi = min(yLo, r.Target), max(yHi, r.Target)
	}
	xLo, xHi := padded(ds.FeatureRange())
	yLo, yHi = padded(yLo, yHi)

	p := plot.New()
	p.Title.Text = "Car price by mileage"
	p.X.Label.Text = "Mileage (km)"
	p.Y.Label.Text = "Price"
	p.X.Min, p.X.Max = xLo, xHi
	p.Y.Min, p.Y.Max = yLo, yHi
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, errors.Wrap(err, "RegressionChart: dataset")
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	line, err := plotter.NewLine(plotter.XYs{
		{X: xLo, Y: reg.Predict(xLo)},
		{X: xHi, Y: reg.Predict(xHi)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "RegressionChart: regression line")
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)

	p.Add(scatter, line)
	p.Legend.Add("dataset", scatter)
	p.Legend.Add("regression", line)
	p.Legend.Top = true
	return p, nil
}

// HistoryChart plots the diagnostic metric against cumulative iterations.
func HistoryChart(history []training.Progress) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, errors.NewValueError("HistoryChart", "no progress records")
	}
	points := make(plotter.XYs, len(history))
	for i, h := range history {
		points[i].X, points[i].Y = float64(h.Iterations), h.Metric
	}

	p := plot.New()
	p.Title.Text = "Training progress"
	p.X.Label.Text = "Iterations"
	p.Y.Label.Text = "Mean absolute error"
	p.Add(plotter.NewGrid())

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, errors.Wrap(err, "HistoryChart")
	}
	line.LineStyle.Color = lineColor
	scatter.GlyphStyle.Color = lineColor
	p.Add(line, scatter)
	return p, nil
}

// WritePNG renders p as a PNG of the default size.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(ChartWidth, ChartHeight, "png")
	if err != nil {
		return errors.Wrap(err, "WritePNG")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "WritePNG")
	}
	return nil
}

// SavePNG renders p to a PNG file.
func SavePNG(path string, p *plot.Plot) error {
	if err := p.Save(ChartWidth, ChartHeight, path); err != nil {
		return errors.NewStoreError("SavePNG", path, err)
	}
	return nil
}
