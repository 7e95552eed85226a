// Package model defines the data model shared by the scaler, the optimizer,
// the training session and the stores: records, datasets, parameters and
// the training configuration.
package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// Record は1件の観測値（走行距離と価格）
type Record struct {
	Feature float64 // 走行距離 (km)
	Target  float64 // 価格
}

// Dataset は空でないレコード列。読み込み後は変更されない。
// レコードの順序は浮動小数点の加算順序にのみ影響する。
type Dataset struct {
	records []Record
}

// NewDataset はレコードをコピーして新しいDatasetを作成する
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.NewDataError("NewDataset", errors.ErrEmptyData)
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}, nil
}

// Len はレコード数を返す
func (d *Dataset) Len() int {
	return len(d.records)
}

// At はi番目のレコードを返す
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Records はレコードのコピーを返す
func (d *Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Features は特徴量の列をベクトルとして返す
func (d *Dataset) Features() *mat.VecDense {
	v := mat.NewVecDense(len(d.records), nil)
	for i, r := range d.records {
		v.SetVec(i, r.Feature)
	}
	return v
}

// Targets は目的変数の列をベクトルとして返す
func (d *Dataset) Targets() *mat.VecDense {
	v := mat.NewVecDense(len(d.records), nil)
	for i, r := range d.records {
		v.SetVec(i, r.Target)
	}
	return v
}

// FeatureRange は特徴量の最小値と最大値を返す
func (d *Dataset) FeatureRange() (lo, hi float64) {
	lo, hi = d.records[0].Feature, d.records[0].Feature
	for _, r := range d.records[1:] {
		if r.Feature < lo {
			lo = r.Feature
		}
		if r.Feature > hi {
			hi = r.Feature
		}
	}
	return lo, hi
}
