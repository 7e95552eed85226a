// Package metrics は回帰の評価指標を gonum のベクトル上で計算する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

func checkLengths(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len())
	}
	return n, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkLengths("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yPred - yTrue)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred.AtVec(i) - yTrue.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する。
// 加算はインデックス順に行う。
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkLengths("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yPred - yTrue|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yPred.AtVec(i) - yTrue.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する。負の値もそのまま返す。
// 予測が完全に一致すれば yTrue が定数でも 1 を返す。
// それ以外で yTrue に分散がない場合は ErrConstantTarget を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkLengths("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// yTrueの平均を計算
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	// 全変動（TSS）と残差変動（RSS）を計算
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if rss == 0 {
		return 1, nil
	}
	if tss == 0 {
		return 0, errors.NewDataError("R2Score", errors.ErrConstantTarget)
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// Accuracy は予測の相対精度 100 * (1 - |yTrue - yPred| / yTrue) を要素ごとに返す。
// 分母は符号付きのため、負の yTrue では100を超える。
// yTrue が0の要素は定義できないため NaN になる。
func Accuracy(yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n, err := checkLengths("Accuracy", yTrue, yPred)
	if err != nil {
		return nil, err
	}

	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		if t == 0 {
			out.SetVec(i, math.NaN())
			continue
		}
		out.SetVec(i, 100*(1-math.Abs(t-yPred.AtVec(i))/t))
	}
	return out, nil
}
