package linear

import "math"

// Predict は仮説関数 theta1 * stdX + theta0 を返す。
// stdX は学習データの統計量で標準化された特徴量。
func Predict(stdX, theta0, theta1 float64) float64 {
	return math.FMA(theta1, stdX, theta0)
}
