package model

// DatasetStore は永続化されたデータセットの読み込みを抽象化する
type DatasetStore interface {
	// Load はデータセットを読み込む。存在しない場合はStoreError、
	// 不正な行がある場合はDataErrorを返す。
	Load() (*Dataset, error)
}

// WeightStore は学習済みパラメータの永続化を抽象化する
type WeightStore interface {
	// Load はパラメータを読み込む。存在しない場合は {0, 0} を作成して返す。
	Load() (Parameters, error)

	// Save はパラメータを原子的に上書きする
	Save(p Parameters) error
}

// Checkpointer はバッチ完了ごとにパラメータを保存する先
type Checkpointer interface {
	Save(p Parameters) error
}
