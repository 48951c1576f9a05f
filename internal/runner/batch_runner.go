package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem は一括処理の1ファイル分の結果です。
type BatchItem struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	Shots    int    `json:"shots"`
	Warnings int    `json:"warnings"`
}

// BatchRunner は複数のスクリプトファイルを並列にコンパイルします。
// 継続性のスナップショットは一括処理全体で1回だけ取得します。
type BatchRunner struct {
	compiler *CompileRunner
	format   string
	workers  int
}

// NewBatchRunner は BatchRunner を初期化します。workers が 1 未満なら 1 にします。
func NewBatchRunner(cr *CompileRunner, format string, workers int) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{compiler: cr, format: format, workers: workers}
}

// Run は inputs の各ファイルを読み込み、結果を outputDir/<名前>.json に書き出します。
// 結果は inputs と同じ順序で返します。
func (br *BatchRunner) Run(ctx context.Context, inputs []string, outputDir string) ([]BatchItem, error) {
	if err := validateInputs(inputs); err != nil {
		return nil, err
	}

	snapshot, err := br.compiler.continuity.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("継続性レコードの取得に失敗しました: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}

	items := make([]BatchItem, len(inputs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(br.workers)

	slog.Info("一括コンパイルを開始します", "count", len(inputs), "workers", br.workers)

	for i, input := range inputs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			data, err := ReadInput(input, nil)
			if err != nil {
				return err
			}
			script, err := DecodeScript(data, DetectFormat(input, br.format))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			res := br.compiler.compile(script, snapshot)
			output := filepath.Join(outputDir, outputName(input))
			if err := WriteJSON(output, res, nil); err != nil {
				return err
			}

			items[i] = BatchItem{Input: input, Output: output, Shots: res.Meta.Shots, Warnings: res.Meta.Warnings}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("一括コンパイルが完了しました", "total", len(items))
	return items, nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// validateInputs は標準入力の指定と、出力名が衝突する入力を拒否します。
func validateInputs(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		if input == "" || input == "-" {
			return fmt.Errorf("一括処理では標準入力を指定できません")
		}
		name := outputName(input)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("出力名 %s が衝突しています (%s, %s)", name, prev, input)
		}
		seen[name] = input
	}
	return nil
}
