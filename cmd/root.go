package cmd

import (
	"log/slog"
	"strings"

	"github.com/shouni/go-shot-prompt-kit/internal/config"
	"github.com/shouni/go-shot-prompt-kit/pkg/render"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// appName は CLI のコマンド名なのだ。
const appName = "shot-prompt"

// opts は全サブコマンドで共有する CLI フラグの受け皿なのだ。
var opts config.CompileOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 描画設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.Model, "model", "", "描画ターゲットのモデル名なのだ（auto, imagen, gemini, imagefx, flux, leonardo）。")
	rootCmd.PersistentFlags().StringVar(&opts.ProfilesFile, "profiles", "", "プロファイル表を上書きする YAML ファイルのパスなのだ。")

	// --- 継続性 ---
	rootCmd.PersistentFlags().StringVar(&opts.ContinuityFile, "continuity-file", "", "継続性レコードを保存する JSON ファイルのパスなのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.NoContinuity, "no-continuity", false, "保存された継続性を使わずに実行するのだ。")
}

// preRunAppE は、コマンド実行前にフラグの値をチェックするのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// --verbose は clibase の共通フラグなのだ。ショットごとのデバッグログが見えるようになるのだよ
	if clibase.Flags.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if opts.Model == "" {
		return nil
	}
	// 未知のモデル名は auto として扱うけれど、打ち間違いに気づけるように警告だけ出すのだ
	name := strings.ToLower(strings.TrimSpace(opts.Model))
	if render.ParseTarget(name).String() != name {
		slog.Warn("未知のモデル名なので auto として描画するのだ", "model", opts.Model)
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		appName,
		addAppFlags,
		preRunAppE,
		compileCmd,
		batchCmd,
		continuityCmd,
	)
}
