package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultModel              = "auto"
	DefaultContinuityFile     = "output/continuity.json"
	DefaultContinuityCacheTTL = 30 * time.Second
	DefaultBatchWorkers       = 4
)

// Config は Shot Prompt Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- Render Settings ---
	Model        string // 描画先モデル (auto | imagen | gemini | imagefx | flux | leonardo)
	ProfilesFile string // スタイルプロファイルの上書き YAML（任意）

	// --- Continuity Settings ---
	ContinuityFile     string
	ContinuityCacheTTL time.Duration

	// --- Batch Settings ---
	BatchWorkers int
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		Model:              DefaultModel,
		ContinuityFile:     DefaultContinuityFile,
		ContinuityCacheTTL: DefaultContinuityCacheTTL,
		BatchWorkers:       DefaultBatchWorkers,
	}
}
