package training

import (
	"context"
	"time"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/linear"
	"github.com/YuminosukeSato/ftlinear/metrics"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// Service はデータセットと重みのストアを組み合わせた推論・学習のエントリーポイント。
// 現在のパラメータはプロセス内に保持せず、毎回ストアから読み込む。
type Service struct {
	data    model.DatasetStore
	weights model.WeightStore
	logger  log.Logger
	sinks   []ProgressSink
}

// ServiceOption は Service を設定する関数
type ServiceOption func(*Service)

// WithServiceLogger は Service とそのセッションのロガーを設定する
func WithServiceLogger(l log.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProgress は Train のすべてのセッションに進捗の通知先を追加する
func WithProgress(sink ProgressSink) ServiceOption {
	return func(s *Service) {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

// NewService は新しい Service を作成する
func NewService(data model.DatasetStore, weights model.WeightStore, opts ...ServiceOption) *Service {
	s := &Service{data: data, weights: weights}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("training")
	}
	return s
}

func (s *Service) loadDataset() (*model.Dataset, preprocessing.ScalerStats, error) {
	ds, err := s.data.Load()
	if err != nil {
		return nil, preprocessing.ScalerStats{}, err
	}
	stats, err := preprocessing.FitScaler(ds)
	if err != nil {
		return nil, preprocessing.ScalerStats{}, err
	}
	return ds, stats, nil
}

// Model は現在の重みとデータセットから得た統計量で学習済みモデルを組み立てる
func (s *Service) Model() (reg *linear.Regression, ds *model.Dataset, err error) {
	defer errors.Recover(&err, "Service.Model")

	ds, stats, err := s.loadDataset()
	if err != nil {
		return nil, nil, err
	}
	p, err := s.weights.Load()
	if err != nil {
		return nil, nil, err
	}
	return linear.NewRegression(stats, p), ds, nil
}

// PredictPrice は走行距離に対する予測価格を返す。
// DatasetStore.Load → FitScaler → WeightStore.Load → Standardize → Predict の順に実行する。
func (s *Service) PredictPrice(feature float64) (price float64, err error) {
	defer errors.Recover(&err, "Service.PredictPrice")

	reg, _, err := s.Model()
	if err != nil {
		return 0, err
	}
	price = reg.Predict(feature)

	s.logger.Debug("Prediction",
		log.OperationKey, log.OperationPredict,
		"km", feature,
		"price", price,
	)
	return price, nil
}

// Train はデータセットを読み込み、reset なら {0,0}、そうでなければ保存済みの重みから学習する。
// 各バッチの後に重みを保存し、最後にもう一度保存する。
//
// opts はこの呼び出しのセッションにだけ適用される。
func (s *Service) Train(ctx context.Context, cfg model.TrainingConfig, reset bool, opts ...Option) (res *Result, err error) {
	defer errors.Recover(&err, "Service.Train")

	ds, stats, err := s.loadDataset()
	if err != nil {
		return nil, err
	}

	initial := model.DefaultParameters()
	if !reset {
		initial, err = s.weights.Load()
		if err != nil {
			return nil, err
		}
	}

	sessionOpts := []Option{WithCheckpoint(s.weights), WithLogger(s.logger)}
	for _, sink := range s.sinks {
		sessionOpts = append(sessionOpts, WithSink(sink))
	}
	sessionOpts = append(sessionOpts, opts...)

	session := NewSession(cfg, sessionOpts...)
	res, err = session.Run(ctx, ds, stats, initial)
	if err != nil {
		return res, err
	}

	if err := s.weights.Save(res.Params); err != nil {
		return res, err
	}

	// 発散は検出しない。呼び出し側が気付けるよう警告だけ出す。
	if !res.Params.IsFinite() {
		errors.Warn(errors.NewNumericalInstabilityError("Service.Train",
			[]float64{res.Params.Theta0, res.Params.Theta1}, res.Passes))
	}
	return res, nil
}

// ResetWeights は保存済みの重みを {0,0} に戻す
func (s *Service) ResetWeights() (err error) {
	defer errors.Recover(&err, "Service.ResetWeights")

	if err := s.weights.Save(model.DefaultParameters()); err != nil {
		return err
	}
	s.logger.Info("Weights reset", log.OperationKey, log.OperationReset)
	return nil
}

// Weights は保存済みの重みを返す
func (s *Service) Weights() (p model.Parameters, err error) {
	defer errors.Recover(&err, "Service.Weights")
	return s.weights.Load()
}

// Evaluation は保存済みの重みの評価結果
type Evaluation struct {
	Samples int                       `json:"samples"`
	Stats   preprocessing.ScalerStats `json:"scaler"`
	Params  model.Parameters          `json:"params"`

	// Metric は進捗報告と同じ診断指標（平均絶対誤差）
	Metric float64 `json:"metric"`

	// SquaredError は本来の平均二乗誤差
	SquaredError float64 `json:"squared_error"`

	// RSquared は0に切り上げた決定係数
	RSquared float64 `json:"r_squared"`

	// Optimum は閉形式の最小二乗解
	Optimum model.Parameters `json:"optimum"`
}

// Evaluate は保存済みの重みをデータセット全体で評価する
func (s *Service) Evaluate() (ev *Evaluation, err error) {
	defer errors.Recover(&err, "Service.Evaluate")
	start := time.Now()

	reg, ds, err := s.Model()
	if err != nil {
		return nil, err
	}

	metric, err := linear.MeanSquaredError(ds, reg.Stats, reg.Params)
	if err != nil {
		return nil, err
	}
	squared, err := linear.SquaredError(ds, reg.Stats, reg.Params)
	if err != nil {
		return nil, err
	}
	r2, err := reg.Score(ds)
	if err != nil {
		return nil, err
	}

	ev = &Evaluation{
		Samples:      ds.Len(),
		Stats:        reg.Stats,
		Params:       reg.Params,
		Metric:       metric,
		SquaredError: squared,
		RSquared:     r2,
		Optimum:      linear.LeastSquares(ds, reg.Stats),
	}

	s.logger.Info("Evaluation completed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, ev.Samples,
		log.LossKey, ev.Metric,
		log.R2ScoreKey, ev.RSquared,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ev, nil
}

// Comparison はレコード1件の実測値と予測値の比較
type Comparison struct {
	Feature   float64 `json:"km"`
	Target    float64 `json:"price"`
	Predicted float64 `json:"predicted"`
	// Accuracy は 100 * (1 - |price - predicted| / price)。price が0なら NaN。
	Accuracy float64 `json:"accuracy"`
}

// Compare はデータセットの各レコードについて実測値と予測値を並べる
func (s *Service) Compare() (rows []Comparison, err error) {
	defer errors.Recover(&err, "Service.Compare")

	reg, ds, err := s.Model()
	if err != nil {
		return nil, err
	}

	targets := ds.Targets()
	predicted := reg.PredictDataset(ds)
	accuracy, err := metrics.Accuracy(targets, predicted)
	if err != nil {
		return nil, err
	}

	rows = make([]Comparison, ds.Len())
	for i := range rows {
		rows[i] = Comparison{
			Feature:   ds.At(i).Feature,
			Target:    targets.AtVec(i),
			Predicted: predicted.AtVec(i),
			Accuracy:  accuracy.AtVec(i),
		}
	}
	return rows, nil
}
