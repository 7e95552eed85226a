package linear

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// 価格が走行距離に対して完全に線形（1000kmあたり-200）
func linearDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset([]model.Record{
		{Feature: 10000, Target: 20000},
		{Feature: 20000, Target: 18000},
		{Feature: 30000, Target: 16000},
		{Feature: 40000, Target: 14000},
	})
	require.NoError(t, err)
	return ds
}

// 中古車の走行距離と価格（ノイズあり）
func carDataset(t *testing.T) *model.Dataset {
	t.Helper()
	raw := [][2]float64{
		{240000, 3650}, {139800, 3800}, {150500, 4400}, {185530, 4450},
		{176000, 5250}, {114800, 5350}, {166800, 5800}, {89000, 5990},
		{144500, 5999}, {84000, 6200}, {82029, 6390}, {63060, 6390},
		{74000, 6600}, {97500, 6800}, {67000, 6800}, {76025, 6900},
		{48235, 6900}, {93000, 6990}, {60949, 7490}, {65674, 7590},
		{54000, 7990}, {68500, 7990}, {22899, 7990}, {61789, 8290},
	}
	records := make([]model.Record, len(raw))
	for i, r := range raw {
		records[i] = model.Record{Feature: r[0], Target: r[1]}
	}
	ds, err := model.NewDataset(records)
	require.NoError(t, err)
	return ds
}

func fit(t *testing.T, ds *model.Dataset) preprocessing.ScalerStats {
	t.Helper()
	stats, err := preprocessing.FitScaler(ds)
	require.NoError(t, err)
	return stats
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name           string
		stdX           float64
		theta0, theta1 float64
		want           float64
	}{
		{name: "zero parameters", stdX: 1.5, want: 0},
		{name: "intercept only at mean", stdX: 0, theta0: 17000, theta1: -2236, want: 17000},
		{name: "slope and intercept", stdX: 2, theta0: 1, theta1: 3, want: 7},
		{name: "negative feature", stdX: -1, theta0: 10, theta1: 4, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Predict(tt.stdX, tt.theta0, tt.theta1))
		})
	}
}

func TestPredict_Affine(t *testing.T) {
	theta0, theta1 := 6331.8, -1106.04
	for _, a := range []float64{-2.5, -0.3, 0, 0.7, 1.9} {
		for _, b := range []float64{-1, 0.25, 3} {
			diff := Predict(a+b, theta0, theta1) - Predict(a, theta0, theta1)
			assert.InDelta(t, theta1*b, diff, 1e-9, "a=%v b=%v", a, b)
		}
	}
}

func TestGradientDescent_ZeroIterations(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)
	p := model.Parameters{Theta0: 123.5, Theta1: -7.25}

	assert.Equal(t, p, GradientDescent(ds, stats, p, 0.1, 0))
	assert.Equal(t, p, GradientDescent(ds, stats, p, 0.1, -5))
}

func TestGradientDescent_SinglePass(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)

	// {0,0}から1回: theta0 = lr*mean(y), theta1 = lr*mean(y*x)
	got := GradientDescent(ds, stats, model.DefaultParameters(), 0.1, 1)
	assert.InDelta(t, 1700.0, got.Theta0, 1e-9)
	assert.InDelta(t, -0.1*0.2*stats.StdDev, got.Theta1, 1e-6)
}

func TestGradientDescent_PassesCompose(t *testing.T) {
	ds := carDataset(t)
	stats := fit(t, ds)
	p := model.DefaultParameters()

	once := GradientDescent(ds, stats, p, 0.05, 30)
	split := GradientDescent(ds, stats, GradientDescent(ds, stats, p, 0.05, 10), 0.05, 20)
	assert.Equal(t, once, split)
}

func TestGradientDescent_ConvergesToLeastSquares(t *testing.T) {
	ds := carDataset(t)
	stats := fit(t, ds)

	want := LeastSquares(ds, stats)
	got := GradientDescent(ds, stats, model.DefaultParameters(), 0.1, 1000)

	assert.InDelta(t, want.Theta0, got.Theta0, 1e-6)
	assert.InDelta(t, want.Theta1, got.Theta1, 1e-6)
}

func TestGradientDescent_MonotonicImprovement(t *testing.T) {
	t.Run("metric on linear data", func(t *testing.T) {
		ds := linearDataset(t)
		stats := fit(t, ds)
		p := model.DefaultParameters()

		prev, err := MeanSquaredError(ds, stats, p)
		require.NoError(t, err)
		for k := 0; k < 20; k++ {
			p = GradientDescent(ds, stats, p, 0.1, 5)
			cur, err := MeanSquaredError(ds, stats, p)
			require.NoError(t, err)
			assert.LessOrEqual(t, cur, prev, "batch %d", k+1)
			prev = cur
		}
	})

	t.Run("squared error on noisy data", func(t *testing.T) {
		ds := carDataset(t)
		stats := fit(t, ds)
		p := model.DefaultParameters()

		prev, err := SquaredError(ds, stats, p)
		require.NoError(t, err)
		for k := 0; k < 20; k++ {
			p = GradientDescent(ds, stats, p, 0.1, 5)
			cur, err := SquaredError(ds, stats, p)
			require.NoError(t, err)
			assert.LessOrEqual(t, cur, prev, "batch %d", k+1)
			prev = cur
		}

		optimum, err := SquaredError(ds, stats, LeastSquares(ds, stats))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prev, optimum-1e-6)
	})
}

func TestMeanSquaredError_IsAbsolute(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)

	// {0,0}では全予測が0なので mean(|y|)
	got, err := MeanSquaredError(ds, stats, model.DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, 17000.0, got)

	squared, err := SquaredError(ds, stats, model.DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, (20000.0*20000+18000*18000+16000*16000+14000*14000)/4, squared)
}

func TestRSquared(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)

	t.Run("exact fit", func(t *testing.T) {
		// 最適解は theta0=17000, theta1=-0.2*std
		p := model.Parameters{Theta0: 17000, Theta1: -0.2 * stats.StdDev}
		r2, err := RSquared(ds, stats, p)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r2, 1e-12)
	})

	t.Run("clamped at zero", func(t *testing.T) {
		r2, err := RSquared(ds, stats, model.DefaultParameters())
		require.NoError(t, err)
		assert.Equal(t, 0.0, r2)
	})

	t.Run("constant target", func(t *testing.T) {
		flat, err := model.NewDataset([]model.Record{{Feature: 1, Target: 5}, {Feature: 2, Target: 5}})
		require.NoError(t, err)
		_, err = RSquared(flat, fit(t, flat), model.DefaultParameters())
		assert.True(t, errors.Is(err, errors.ErrConstantTarget))

		r2, err := RSquared(flat, fit(t, flat), model.Parameters{Theta0: 5, Theta1: 0})
		require.NoError(t, err)
		assert.Equal(t, 1.0, r2)
	})
}

func TestEndToEnd(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)

	p := GradientDescent(ds, stats, model.DefaultParameters(), 0.1, 1000)
	reg := NewRegression(stats, p)

	assert.InDelta(t, 17000.0, reg.Predict(25000), 1.0)

	slope, intercept := reg.Line()
	assert.InDelta(t, -0.2, slope, 1e-6)
	assert.InDelta(t, 22000.0, intercept, 1e-3)

	score, err := reg.Score(ds)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestRegression_ExportJSON(t *testing.T) {
	reg := NewRegression(preprocessing.ScalerStats{Mean: 25000, StdDev: 11180.339887498949},
		model.Parameters{Theta0: 17000, Theta1: -2236.0679774997896})

	var buf bytes.Buffer
	require.NoError(t, reg.ExportJSON(&buf))

	var decoded Regression
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *reg, decoded)
	assert.Contains(t, reg.String(), "theta0=17000")
}

func TestLeastSquares(t *testing.T) {
	ds := linearDataset(t)
	stats := fit(t, ds)

	p := LeastSquares(ds, stats)
	assert.InDelta(t, 17000.0, p.Theta0, 1e-6)
	assert.InDelta(t, -0.2*stats.StdDev, p.Theta1, 1e-6)
	assert.False(t, math.IsNaN(p.Theta1))
}
