package training

import (
	"github.com/YuminosukeSato/ftlinear/pkg/log"
)

// Progress はバッチ完了ごと（およびバッチ0の基準点）に通知される進捗レコード
type Progress struct {
	// Batch はバッチ番号。0 は学習前の基準点。
	Batch int `json:"batch"`

	// Iterations はこの時点までに実行した累積パス数
	Iterations int `json:"iterations"`

	// Metric は診断指標（MeanSquaredError の値）
	Metric float64 `json:"metric"`
}

// ProgressSink は進捗レコードの受け取り先。
// 通知は一方向で、セッションはその結果に依存しない。
type ProgressSink interface {
	Report(p Progress)
}

// SinkFunc は関数を ProgressSink として使うためのアダプタ
type SinkFunc func(p Progress)

// Report implements ProgressSink.
func (f SinkFunc) Report(p Progress) {
	f(p)
}

// MultiSink は複数の ProgressSink に同じレコードを順に配送する
type MultiSink []ProgressSink

// Report implements ProgressSink.
func (m MultiSink) Report(p Progress) {
	for _, s := range m {
		if s != nil {
			s.Report(p)
		}
	}
}

// HistorySink は受け取ったレコードを順に記録する
type HistorySink struct {
	records []Progress
}

// NewHistorySink は空の HistorySink を作成する
func NewHistorySink() *HistorySink {
	return &HistorySink{}
}

// Report implements ProgressSink.
func (h *HistorySink) Report(p Progress) {
	h.records = append(h.records, p)
}

// Records は記録されたレコードのコピーを返す
func (h *HistorySink) Records() []Progress {
	out := make([]Progress, len(h.records))
	copy(out, h.records)
	return out
}

// Last は最後のレコードを返す。記録がなければ ok は false。
func (h *HistorySink) Last() (p Progress, ok bool) {
	if len(h.records) == 0 {
		return Progress{}, false
	}
	return h.records[len(h.records)-1], true
}

// LogSink は進捗を構造化ログとして出力する
type LogSink struct {
	logger log.Logger
	every  int
}

// NewLogSink は every バッチごとに Info で出力する LogSink を作成する。
// それ以外のバッチは Debug で出力する。every <= 1 なら全バッチが Info。
func NewLogSink(logger log.Logger, every int) *LogSink {
	if logger == nil {
		logger = log.GetLoggerWithName("training")
	}
	if every < 1 {
		every = 1
	}
	return &LogSink{logger: logger, every: every}
}

// Report implements ProgressSink.
func (s *LogSink) Report(p Progress) {
	fields := []any{
		log.BatchKey, p.Batch,
		log.IterationKey, p.Iterations,
		log.LossKey, p.Metric,
	}
	if p.Batch%s.every == 0 {
		s.logger.Info("Batch completed", fields...)
		return
	}
	s.logger.Debug("Batch completed", fields...)
}
