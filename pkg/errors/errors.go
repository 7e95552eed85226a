// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// エラーは DataError / ConfigError / StoreError の3種類に分類され、
// すべて cockroachdb/errors によるスタックトレースを保持します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("ftlinear-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConfigAdjustedWarning は設定値がエラーにせず正規化された場合の警告です。
// 例: batch > iterations のとき batch を iterations に揃える。
type ConfigAdjustedWarning struct {
	Param  string
	From   interface{}
	To     interface{}
	Reason string
}

func (w *ConfigAdjustedWarning) Error() string {
	return fmt.Sprintf("parameter '%s' adjusted from %v to %v: %s", w.Param, w.From, w.To, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConfigAdjustedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("param_name", w.Param).
		Interface("from", w.From).
		Interface("to", w.To).
		Str("reason", w.Reason).
		Str("type", "ConfigAdjustedWarning")
}

// NewConfigAdjustedWarning は新しいConfigAdjustedWarningを作成します。
func NewConfigAdjustedWarning(param string, from, to interface{}, reason string) *ConfigAdjustedWarning {
	return &ConfigAdjustedWarning{Param: param, From: from, To: to, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DataError はデータセットの内容が前提条件を満たさない場合のエラーです。
// 空のデータセット、分散ゼロの特徴量、不正なレコードなどが該当し、回復不能です。
type DataError struct {
	Op  string
	Err error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ftlinear: %s: data error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ftlinear: %s: data error", e.Op)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		AnErr("cause", e.Err).
		Str("type", "DataError")
}

// NewDataError は新しいDataErrorを作成し、スタックトレースを付与します。
func NewDataError(op string, err error) error {
	return errors.WithStack(&DataError{Op: op, Err: err})
}

// ConfigError は学習設定の検証に失敗した場合のエラーです。
type ConfigError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ftlinear: invalid configuration for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError は新しいConfigErrorを作成し、スタックトレースを付与します。
func NewConfigError(param, reason string, value interface{}) error {
	return errors.WithStack(&ConfigError{ParamName: param, Reason: reason, Value: value})
}

// StoreError は永続化された状態の読み書きに失敗した場合のエラーです。
// 元のI/Oエラーはそのまま Err に保持されます。
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ftlinear: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("ftlinear: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StoreError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("path", e.Path).
		AnErr("cause", e.Err).
		Str("type", "StoreError")
}

// NewStoreError は新しいStoreErrorを作成し、スタックトレースを付与します。
func NewStoreError(op, path string, err error) error {
	return errors.WithStack(&StoreError{Op: op, Path: path, Err: err})
}

// DimensionError は入力ベクトルの長さが期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("ftlinear: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got})
}

// ValueError は引数の値が不適切な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ftlinear: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 最適化は発散を検出しないため、呼び出し側が警告として扱います。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("ftlinear: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化された情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("iteration", e.Iteration).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータセットが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrZeroVariance は特徴量の標準偏差が0の場合のエラーです。
	ErrZeroVariance = New("feature has zero variance")

	// ErrNonFiniteFeature は特徴量の平均または標準偏差がオーバーフローした場合のエラーです。
	ErrNonFiniteFeature = New("feature statistics are not finite")

	// ErrConstantTarget は目的変数がすべて同じ値でR²が定義できない場合のエラーです。
	ErrConstantTarget = New("target has zero variance")

	// ErrMalformedRecord はレコードが解析できない場合のエラーです。
	ErrMalformedRecord = New("malformed record")

	// ErrNotFound は永続化されたデータが存在しない場合のエラーです。
	ErrNotFound = New("not found")
)
