package config

import (
	"log/slog"
	"strconv"
	"time"

	kitconfig "github.com/shouni/go-shot-prompt-kit/pkg/config"

	"github.com/shouni/go-utils/envutil"
)

// 環境変数名の定義なのだ
const (
	EnvModel              = "SHOT_PROMPT_MODEL"
	EnvProfilesFile       = "SHOT_PROMPT_PROFILES"
	EnvContinuityFile     = "CONTINUITY_FILE"
	EnvContinuityCacheTTL = "CONTINUITY_CACHE_TTL"
	EnvBatchWorkers       = "BATCH_WORKERS"
)

// DefaultOutputDir は batch コマンドの既定の出力先なのだ
const DefaultOutputDir = "output/prompts"

// LoadConfig は既定値に環境変数を重ねた設定を返すのだ！
// 解釈できない値は警告を出して既定値のままにするのだ。
func LoadConfig() kitconfig.Config {
	cfg := kitconfig.DefaultConfig()
	cfg.Model = envutil.GetEnv(EnvModel, cfg.Model)
	cfg.ProfilesFile = envutil.GetEnv(EnvProfilesFile, cfg.ProfilesFile)
	cfg.ContinuityFile = envutil.GetEnv(EnvContinuityFile, cfg.ContinuityFile)

	if v := envutil.GetEnv(EnvContinuityCacheTTL, ""); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("CONTINUITY_CACHE_TTL を解釈できないので既定値を使うのだ", "value", v, "error", err)
		} else {
			cfg.ContinuityCacheTTL = ttl
		}
	}

	if v := envutil.GetEnv(EnvBatchWorkers, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			slog.Warn("BATCH_WORKERS を解釈できないので既定値を使うのだ", "value", v)
		} else {
			cfg.BatchWorkers = n
		}
	}
	return cfg
}

// CompileOptions は CLI フラグから渡される実行時のパラメータなのだ。
type CompileOptions struct {
	// 入出力関連
	ScriptFile string // --script-file ('-' で標準入力)
	OutputFile string // --output-file ('-' で標準出力)
	OutputDir  string // --output-dir (batch 用)
	Format     string // --format (json | yaml、空なら拡張子から判定)

	// 描画設定
	Model        string // --model
	ProfilesFile string // --profiles

	// 継続性
	ContinuityFile string // --continuity-file
	NoContinuity   bool   // --no-continuity: 空の継続性レコードで実行するのだ

	// 並列実行
	Workers int // --workers
}
