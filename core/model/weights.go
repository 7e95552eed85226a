package model

import (
	"math"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// Parameters は標準化された特徴量に対する線形仮説の切片と傾き。
// 学習セッションの間で永続化される唯一の状態。
type Parameters struct {
	Theta0 float64 `json:"theta0"` // 切片
	Theta1 float64 `json:"theta1"` // 傾き
}

// DefaultParameters は初回利用時またはリセット時の {0, 0} を返す
func DefaultParameters() Parameters {
	return Parameters{}
}

// Validate は永続化された値が有限であることを検証する
func (p Parameters) Validate() error {
	if err := errors.CheckNumericalStability("Parameters.Validate", []float64{p.Theta0, p.Theta1}, 0); err != nil {
		return err
	}
	return nil
}

// IsFinite はどちらの係数もNaN/Infでないかを返す
func (p Parameters) IsFinite() bool {
	return !math.IsNaN(p.Theta0) && !math.IsInf(p.Theta0, 0) &&
		!math.IsNaN(p.Theta1) && !math.IsInf(p.Theta1, 0)
}
