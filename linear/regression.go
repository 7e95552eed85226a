// Package linear は単変量線形回帰の仮説関数、評価指標、勾配降下法を提供する。
//
// すべての関数は標準化済みの特徴量を前提とし、標準化の統計量は
// preprocessing.FitScaler で学習データから一度だけ計算したものを渡す。
package linear

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// Regression は学習済みの線形回帰モデル（標準化の統計量とパラメータの組）
type Regression struct {
	Stats  preprocessing.ScalerStats `json:"scaler"`
	Params model.Parameters          `json:"params"`
}

// NewRegression は統計量とパラメータから新しいモデルを作成する
func NewRegression(stats preprocessing.ScalerStats, p model.Parameters) *Regression {
	return &Regression{Stats: stats, Params: p}
}

// Predict は生の特徴量（走行距離）に対する予測価格を返す
func (r *Regression) Predict(feature float64) float64 {
	return Predict(r.Stats.Standardize(feature), r.Params.Theta0, r.Params.Theta1)
}

// PredictDataset はデータセットの各レコードの予測値を返す
func (r *Regression) PredictDataset(ds *model.Dataset) *mat.VecDense {
	return Predictions(ds, r.Stats, r.Params)
}

// Score は切り上げ済みの決定係数を返す
func (r *Regression) Score(ds *model.Dataset) (float64, error) {
	return RSquared(ds, r.Stats, r.Params)
}

// Line は元のスケールでの傾きと切片を返す。
// price = slope * km + intercept
func (r *Regression) Line() (slope, intercept float64) {
	slope = r.Params.Theta1 / r.Stats.StdDev
	intercept = r.Params.Theta0 - slope*r.Stats.Mean
	return slope, intercept
}

// String はモデルを人間が読める形式で返す
func (r *Regression) String() string {
	slope, intercept := r.Line()
	return fmt.Sprintf("price = %.6g * km + %.6g (theta0=%g, theta1=%g)",
		slope, intercept, r.Params.Theta0, r.Params.Theta1)
}

// ExportJSON はモデルをJSONで書き出す
func (r *Regression) ExportJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return errors.Wrap(err, "Regression.ExportJSON")
	}
	return nil
}
