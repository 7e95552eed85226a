package linear

import (
	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// GradientDescent はバッチ勾配降下法を iterations 回実行し、更新後のパラメータを返す。
//
// 各パスでは全レコードについて e_i = predict(std_x_i) - y_i を集計し、
//
//	theta0 -= learningRate * mean(e_i)
//	theta1 -= learningRate * mean(e_i * std_x_i)
//
// を同時に更新する（両方とも更新前のパラメータから計算した予測を使う）。
// 収束判定や早期終了はなく、発散も検出しない。iterations <= 0 なら p をそのまま返す。
func GradientDescent(ds *model.Dataset, stats preprocessing.ScalerStats, p model.Parameters, learningRate float64, iterations int) model.Parameters {
	if iterations <= 0 {
		return p
	}

	m := float64(ds.Len())
	stdX := stats.StandardizeDataset(ds)
	targets := make([]float64, ds.Len())
	for i := range targets {
		targets[i] = ds.At(i).Target
	}

	theta0, theta1 := p.Theta0, p.Theta1
	for iter := 0; iter < iterations; iter++ {
		var sumErrors0, sumErrors1 float64

		// 勾配のための誤差を集計
		for i, x := range stdX {
			e := Predict(x, theta0, theta1) - targets[i]
			sumErrors0 += e
			sumErrors1 += e * x
		}

		// 同時更新
		theta0 -= learningRate * (1.0 / m) * sumErrors0
		theta1 -= learningRate * (1.0 / m) * sumErrors1
	}

	return model.Parameters{Theta0: theta0, Theta1: theta1}
}
