package cmd

import (
	"github.com/shouni/go-shot-prompt-kit/internal/config"
	"github.com/shouni/go-shot-prompt-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、複数の台本を並列にコンパイルするのだ。
var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "複数の台本をまとめてコンパイルして出力ディレクトリに保存するのだ。",
	Long: `継続性レコードは最初に1回だけ読み込んで、すべての台本に同じものを使うのだ。
結果は <出力ディレクトリ>/<入力名>.json に書き出して、一覧を標準出力に出すのだよ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: batchCommand,
}

func init() {
	batchCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "d", config.DefaultOutputDir, "結果を保存するディレクトリなのだ。")
	batchCmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "同時にコンパイルする台本の数なのだ（0 なら環境変数か既定値）。")
	batchCmd.Flags().StringVar(&opts.Format, "format", "", "入力フォーマットなのだ（json | yaml、省略時は拡張子で判定）。")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	return pipeline.ExecuteBatch(cmd.Context(), opts, args, cmd.OutOrStdout())
}
