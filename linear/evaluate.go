package linear

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/metrics"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// Predictions はデータセットの各レコードに対する予測値を返す
func Predictions(ds *model.Dataset, stats preprocessing.ScalerStats, p model.Parameters) *mat.VecDense {
	out := mat.NewVecDense(ds.Len(), nil)
	for i := 0; i < ds.Len(); i++ {
		out.SetVec(i, Predict(stats.Standardize(ds.At(i).Feature), p.Theta0, p.Theta1))
	}
	return out
}

// MeanSquaredError は学習の進捗報告に使う診断指標を返す。
//
// 名前に反して値は平均「絶対」誤差 mean(|predict_i - y_i|) であり、二乗はしない。
// 既存の数値と互換性を保つため、この挙動を維持している。勾配には使われない。
func MeanSquaredError(ds *model.Dataset, stats preprocessing.ScalerStats, p model.Parameters) (float64, error) {
	v, err := metrics.MAE(ds.Targets(), Predictions(ds, stats, p))
	if err != nil {
		return 0, errors.Wrap(err, "MeanSquaredError")
	}
	return v, nil
}

// SquaredError は本来の平均二乗誤差 mean((predict_i - y_i)^2) を返す
func SquaredError(ds *model.Dataset, stats preprocessing.ScalerStats, p model.Parameters) (float64, error) {
	v, err := metrics.MSE(ds.Targets(), Predictions(ds, stats, p))
	if err != nil {
		return 0, errors.Wrap(err, "SquaredError")
	}
	return v, nil
}

// RSquared は決定係数 1 - SS_res/SS_tot を返す。負の値は0に切り上げる。
// 予測が完全に一致すれば1。それ以外で目的変数が定数の場合は DataError(ErrConstantTarget)。
func RSquared(ds *model.Dataset, stats preprocessing.ScalerStats, p model.Parameters) (float64, error) {
	r2, err := metrics.R2Score(ds.Targets(), Predictions(ds, stats, p))
	if err != nil {
		return 0, err
	}
	if r2 < 0 {
		return 0, nil
	}
	return r2, nil
}

// LeastSquares は標準化された特徴量に対する最小二乗解（閉形式）を返す。
// 勾配降下法の収束先の参照値として使う。
func LeastSquares(ds *model.Dataset, stats preprocessing.ScalerStats) model.Parameters {
	stdX := stats.StandardizeDataset(ds)
	targets := make([]float64, ds.Len())
	for i := range targets {
		targets[i] = ds.At(i).Target
	}
	alpha, beta := stat.LinearRegression(stdX, targets, nil, false)
	return model.Parameters{Theta0: alpha, Theta1: beta}
}
