package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-shot-prompt-kit/examples"
	"github.com/shouni/go-shot-prompt-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// compileCmd は、1本の台本にプロンプトを書き込むのだ。
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "台本（JSON/YAML）の各ショットにプロンプトを書き込むのだ。",
	Long: `hook / body / cta の各ショットから画像生成用プロンプト、動画生成用プロンプト、
ネガティブプロンプトを組み立てて、結果を JSON で出力するのだ。
入力が壊れていても台本はそのまま返して、警告に理由を残すのだよ。`,
	RunE: compileCommand,
}

// useExample が true のときは同梱のサンプル台本を入力にするのだ
var useExample bool

func init() {
	compileCmd.Flags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "入力ファイルのパス（'-'で標準入力なのだ）。")
	compileCmd.Flags().StringVarP(&opts.OutputFile, "output-file", "o", "-", "出力ファイルのパス（'-'で標準出力なのだ）。")
	compileCmd.Flags().StringVar(&opts.Format, "format", "", "入力フォーマットなのだ（json | yaml、省略時は拡張子で判定）。")
	compileCmd.Flags().BoolVar(&useExample, "example", false, "同梱のサンプル台本をコンパイルするのだ。")
}

func compileCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var stdin io.Reader = cmd.InOrStdin()
	switch {
	case useExample:
		opts.ScriptFile = "-"
		opts.Format = "json"
		stdin = bytes.NewReader(examples.SampleScript)
	case opts.ScriptFile == "" && !isStdin():
		return fmt.Errorf("入力（--script-file、--example または標準入力）を指定してほしいのだ")
	}

	slog.Info("プロンプトのコンパイルを開始するのだ！",
		"input", opts.ScriptFile,
		"model", opts.Model,
		"output", opts.OutputFile)

	if err := pipeline.Execute(ctx, opts, stdin, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("コンパイル中にエラーが発生したのだ: %w", err)
	}
	return nil
}

// isStdin は標準入力がパイプやリダイレクトかどうかを判定するのだ。
func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
