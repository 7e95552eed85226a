// Package preprocessing は特徴量の標準化を提供する
package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// ScalerStats は学習データの特徴量から一度だけ計算される標準化の統計量。
// 推論時も同じインスタンスを使い、再計算はしない。
type ScalerStats struct {
	// Mean は特徴量の平均値
	Mean float64 `json:"mean"`

	// StdDev は特徴量の母標準偏差（分母N）。常に正。
	StdDev float64 `json:"std_dev"`
}

// FitScaler はデータセットの特徴量から平均と母標準偏差を計算する
//
// パラメータ:
//   - ds: 学習データセット
//
// 戻り値:
//   - ScalerStats: 標準化の統計量
//   - error: データセットが空、特徴量の分散が0、または統計量が有限でない場合のDataError
//
// 使用例:
//
//	stats, err := preprocessing.FitScaler(ds)
//	z := stats.Standardize(25000)
func FitScaler(ds *model.Dataset) (ScalerStats, error) {
	if ds == nil || ds.Len() == 0 {
		return ScalerStats{}, errors.NewDataError("FitScaler", errors.ErrEmptyData)
	}
	n := float64(ds.Len())

	// 平均を計算
	sum := 0.0
	for i := 0; i < ds.Len(); i++ {
		sum += ds.At(i).Feature
	}
	mean := sum / n

	// 母分散を計算
	sumSquares := 0.0
	for i := 0; i < ds.Len(); i++ {
		diff := ds.At(i).Feature - mean
		sumSquares += diff * diff
	}
	stdDev := math.Sqrt(sumSquares / n)

	// 分散0はゼロ除算になるためエラー
	if stdDev == 0 {
		return ScalerStats{}, errors.NewDataError("FitScaler", errors.ErrZeroVariance)
	}
	// オーバーフローすると標準化後の値がすべて0またはNaNになる
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return ScalerStats{}, errors.NewDataError("FitScaler", errors.ErrNonFiniteFeature)
	}

	return ScalerStats{Mean: mean, StdDev: stdDev}, nil
}

// Standardize は (x - mean) / std_dev を返す。副作用なし。
func (s ScalerStats) Standardize(x float64) float64 {
	return (x - s.Mean) / s.StdDev
}

// Inverse は標準化された値を元のスケールに戻す
func (s ScalerStats) Inverse(z float64) float64 {
	return z*s.StdDev + s.Mean
}

// StandardizeDataset は各レコードの特徴量を標準化したスライスを返す
func (s ScalerStats) StandardizeDataset(ds *model.Dataset) []float64 {
	out := make([]float64, ds.Len())
	for i := range out {
		out[i] = s.Standardize(ds.At(i).Feature)
	}
	return out
}
