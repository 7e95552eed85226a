package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

func mustDataset(t *testing.T, features ...float64) *model.Dataset {
	t.Helper()
	records := make([]model.Record, len(features))
	for i, f := range features {
		records[i] = model.Record{Feature: f, Target: float64(i)}
	}
	ds, err := model.NewDataset(records)
	require.NoError(t, err)
	return ds
}

func TestFitScaler(t *testing.T) {
	ds := mustDataset(t, 10000, 20000, 30000, 40000)

	stats, err := FitScaler(ds)
	require.NoError(t, err)

	// 母分散: ((-15000)^2 + (-5000)^2 + 5000^2 + 15000^2) / 4 = 125000000
	assert.Equal(t, 25000.0, stats.Mean)
	assert.InDelta(t, math.Sqrt(125000000), stats.StdDev, 1e-9)
}

func TestFitScaler_MatchesGonumPopulationStats(t *testing.T) {
	features := []float64{240000, 139800, 150500, 185530, 176000, 114800, 166800, 89000, 144500, 84000}
	ds := mustDataset(t, features...)

	stats, err := FitScaler(ds)
	require.NoError(t, err)

	mean, variance := stat.PopMeanVariance(features, nil)
	assert.InDelta(t, mean, stats.Mean, 1e-6)
	assert.InEpsilon(t, math.Sqrt(variance), stats.StdDev, 1e-9)
}

func TestFitScaler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		ds       *model.Dataset
		sentinel error
	}{
		{name: "nil dataset", ds: nil, sentinel: errors.ErrEmptyData},
		{name: "constant feature", ds: mustDataset(t, 5000, 5000, 5000), sentinel: errors.ErrZeroVariance},
		{name: "single record", ds: mustDataset(t, 42), sentinel: errors.ErrZeroVariance},
		{name: "variance overflows", ds: mustDataset(t, 1e200, -1e200), sentinel: errors.ErrNonFiniteFeature},
		{name: "mean overflows", ds: mustDataset(t, math.MaxFloat64, math.MaxFloat64, 0), sentinel: errors.ErrNonFiniteFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitScaler(tt.ds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var dataErr *errors.DataError
			assert.True(t, errors.As(err, &dataErr))
		})
	}
}

func TestStandardize_Linear(t *testing.T) {
	stats, err := FitScaler(mustDataset(t, 61789, 240000, 150500, 22899, 48235))
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.Standardize(stats.Mean))
	assert.InDelta(t, 1.0, stats.Standardize(stats.Mean+stats.StdDev), 1e-12)

	// standardize(a*x + b*y) = a*standardize(x) + b*standardize(y) for a+b = 1
	for _, pair := range [][2]float64{{0, 100000}, {25000, 30000}, {-5000, 5000}} {
		x, y := pair[0], pair[1]
		mid := stats.Standardize((x + y) / 2)
		avg := (stats.Standardize(x) + stats.Standardize(y)) / 2
		assert.InDelta(t, avg, mid, 1e-12)
	}
}

func TestInverse(t *testing.T) {
	stats := ScalerStats{Mean: 101066.25, StdDev: 51565.19}
	for _, x := range []float64{0, 22899, 101066.25, 240000} {
		assert.InDelta(t, x, stats.Inverse(stats.Standardize(x)), 1e-8)
	}
}

func TestStandardizeDataset(t *testing.T) {
	ds := mustDataset(t, 10000, 20000, 30000, 40000)
	stats, err := FitScaler(ds)
	require.NoError(t, err)

	std := stats.StandardizeDataset(ds)
	require.Len(t, std, 4)
	sum := 0.0
	for i, z := range std {
		assert.Equal(t, stats.Standardize(ds.At(i).Feature), z)
		sum += z
	}
	assert.InDelta(t, 0.0, sum, 1e-12)
}
