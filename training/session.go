// Package training はバッチ分割された勾配降下法の学習セッションと、
// データセット・重みの永続化を組み合わせた推論/学習のエントリーポイントを提供する。
package training

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/linear"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
	"github.com/YuminosukeSato/ftlinear/preprocessing"
)

// State はセッションの状態
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Option は Session を設定する関数
type Option func(*Session)

// WithSink は進捗の通知先を追加する
func WithSink(sink ProgressSink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

// WithCheckpoint はバッチ完了ごとにパラメータを保存する先を設定する
func WithCheckpoint(c model.Checkpointer) Option {
	return func(s *Session) {
		s.checkpoint = c
	}
}

// WithLogger はセッションのロガーを設定する
func WithLogger(l log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Result は学習セッションの結果
type Result struct {
	SessionID string               `json:"session_id"`
	Params    model.Parameters     `json:"params"`
	Config    model.TrainingConfig `json:"config"` // 正規化後の設定
	// BatchClamped は batch > iterations のため batch を iterations に揃えたかどうか
	BatchClamped bool       `json:"batch_clamped"`
	Passes       int        `json:"passes"`
	History      []Progress `json:"history"`
}

// Session は1回の学習を実行する。使い捨てで、Run は一度だけ呼べる。
type Session struct {
	id         string
	cfg        model.TrainingConfig
	sinks      []ProgressSink
	checkpoint model.Checkpointer
	logger     log.Logger

	state   State
	batch   int
	batches int
}

// NewSession は新しいセッションを作成する
//
// 使用例:
//
//	s := training.NewSession(cfg,
//	    training.WithSink(training.NewLogSink(nil, 1)),
//	    training.WithCheckpoint(weights),
//	)
//	res, err := s.Run(ctx, ds, stats, model.DefaultParameters())
func NewSession(cfg model.TrainingConfig, opts ...Option) *Session {
	s := &Session{
		id:  uuid.NewString(),
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("training")
	}
	s.logger = s.logger.With(log.EstimatorIDKey, s.id)
	return s
}

// ID はセッションのUUIDを返す
func (s *Session) ID() string {
	return s.id
}

// State は現在の状態を返す
func (s *Session) State() State {
	return s.state
}

// Progress は完了したバッチ数と総バッチ数を返す
func (s *Session) Progress() (batch, batches int) {
	return s.batch, s.batches
}

func (s *Session) report(p Progress, history *[]Progress) {
	*history = append(*history, p)
	for _, sink := range s.sinks {
		sink.Report(p)
	}
}

// Run は initial から学習を開始し、設定されたバッチ数だけ勾配降下法を実行する。
//
// バッチ0として initial での指標を通知したあと、各バッチで
// Iterations/Batch 回のパスを実行し、指標を通知し、直ちにチェックポイントへ保存する。
// ctx はバッチの間でのみ確認される。キャンセル時は最後に保存したパラメータを
// Result に入れて ctx のエラーを返す。
func (s *Session) Run(ctx context.Context, ds *model.Dataset, stats preprocessing.ScalerStats, initial model.Parameters) (res *Result, err error) {
	defer errors.Recover(&err, "Session.Run")

	if s.state != StateIdle {
		return nil, errors.NewValueError("Session.Run", "session has already been run")
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewDataError("Session.Run", errors.ErrEmptyData)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	cfg, clamped := s.cfg.Normalize()
	if clamped {
		errors.Warn(errors.NewConfigAdjustedWarning("batch", s.cfg.Batch, cfg.Batch, "batch exceeds iterations"))
	}

	passes := cfg.PassesPerBatch()
	res = &Result{
		SessionID:    s.id,
		Params:       initial,
		Config:       cfg,
		BatchClamped: clamped,
	}

	s.state = StateRunning
	s.batches = cfg.Batch
	start := time.Now()

	s.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, ds.Len(),
		log.LearningRateKey, cfg.LearningRate,
		log.IterationsKey, cfg.Iterations,
		log.BatchesKey, cfg.Batch,
	)

	metric, err := linear.MeanSquaredError(ds, stats, initial)
	if err != nil {
		s.state = StateFailed
		return res, err
	}
	s.report(Progress{Batch: 0, Iterations: 0, Metric: metric}, &res.History)

	params := initial
	for k := 1; k <= cfg.Batch; k++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.state = StateCancelled
			s.logger.Warn("Training cancelled",
				log.BatchKey, s.batch,
				log.IterationKey, res.Passes,
			)
			return res, errors.WithStack(ctxErr)
		}

		params = linear.GradientDescent(ds, stats, params, cfg.LearningRate, passes)

		metric, err = linear.MeanSquaredError(ds, stats, params)
		if err != nil {
			s.state = StateFailed
			return res, err
		}
		s.report(Progress{Batch: k, Iterations: k * passes, Metric: metric}, &res.History)

		if s.checkpoint != nil {
			if err := s.checkpoint.Save(params); err != nil {
				s.state = StateFailed
				s.logger.Error("Checkpoint failed", err, log.BatchKey, k)
				return res, err
			}
		}

		s.batch = k
		res.Params = params
		res.Passes = k * passes
	}

	s.state = StateCompleted
	s.logger.Info("Training completed",
		log.Theta0Key, params.Theta0,
		log.Theta1Key, params.Theta1,
		log.LossKey, metric,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}
