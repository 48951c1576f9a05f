package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-shot-prompt-kit/internal/builder"
	"github.com/shouni/go-shot-prompt-kit/internal/config"
	"github.com/shouni/go-shot-prompt-kit/internal/runner"
	"github.com/shouni/go-shot-prompt-kit/pkg/domain"

	"gopkg.in/yaml.v3"
)

// Execute は、1本のスクリプトを読み込んでプロンプトを書き込み、結果を保存するのだ。
func Execute(ctx context.Context, opts config.CompileOptions, stdin io.Reader, stdout io.Writer) error {
	appCtx, err := builder.NewAppContext(config.LoadConfig(), opts)
	if err != nil {
		return err
	}

	data, err := runner.ReadInput(opts.ScriptFile, stdin)
	if err != nil {
		return err
	}
	script, err := runner.DecodeScript(data, runner.DetectFormat(opts.ScriptFile, opts.Format))
	if err != nil {
		return err
	}

	res, err := builder.BuildCompileRunner(appCtx).Run(ctx, script)
	if err != nil {
		return err
	}

	if err := runner.WriteJSON(opts.OutputFile, res, stdout); err != nil {
		return err
	}
	slog.Info("プロンプトのコンパイルが完了したのだ！", "output", opts.OutputFile, "warnings", len(res.Warnings))
	return nil
}

// ExecuteBatch は、複数のスクリプトを並列にコンパイルして出力ディレクトリに保存するのだ。
func ExecuteBatch(ctx context.Context, opts config.CompileOptions, inputs []string, stdout io.Writer) error {
	appCtx, err := builder.NewAppContext(config.LoadConfig(), opts)
	if err != nil {
		return err
	}

	items, err := builder.BuildBatchRunner(appCtx).Run(ctx, inputs, opts.OutputDir)
	if err != nil {
		return fmt.Errorf("一括コンパイル中にエラーが発生したのだ: %w", err)
	}
	return runner.WriteJSON("-", items, stdout)
}

// ShowContinuity は、現在の継続性レコードを表示するのだ。
func ShowContinuity(ctx context.Context, opts config.CompileOptions, stdout io.Writer) error {
	appCtx, err := builder.NewAppContext(config.LoadConfig(), opts)
	if err != nil {
		return err
	}
	rec, err := appCtx.Store.Get(ctx)
	if err != nil {
		return err
	}
	return runner.WriteJSON("-", rec, stdout)
}

// UpdateContinuity は、パッチをマージして継続性レコードを保存するのだ。
// パッチファイルは JSON でも YAML でもよく、フラグの値はファイルの内容より優先するのだ。
func UpdateContinuity(ctx context.Context, opts config.CompileOptions, patchFile string, flagPatch domain.ContinuityPatch, stdin io.Reader, stdout io.Writer) error {
	appCtx, err := builder.NewAppContext(config.LoadConfig(), opts)
	if err != nil {
		return err
	}

	var patch domain.ContinuityPatch
	if patchFile != "" {
		data, err := runner.ReadInput(patchFile, stdin)
		if err != nil {
			return err
		}
		// YAML は JSON の上位互換なので、どちらも yaml.v3 で読むのだ
		if err := yaml.Unmarshal(data, &patch); err != nil {
			return fmt.Errorf("パッチのパースに失敗したのだ: %w", err)
		}
	}
	patch = overlayPatch(patch, flagPatch)
	if patch.IsEmpty() {
		return fmt.Errorf("更新する項目がないのだ。--patch-file か個別のフラグを指定してほしいのだ")
	}

	rec, err := appCtx.Store.Set(ctx, patch)
	if err != nil {
		return err
	}
	slog.Info("継続性レコードを保存したのだ", "file", appCtx.Config.ContinuityFile)
	return runner.WriteJSON("-", rec, stdout)
}

// ResetContinuity は、継続性レコードを組み込みの既定値に戻すのだ。
func ResetContinuity(ctx context.Context, opts config.CompileOptions, stdout io.Writer) error {
	appCtx, err := builder.NewAppContext(config.LoadConfig(), opts)
	if err != nil {
		return err
	}
	rec, err := appCtx.Store.Reset(ctx)
	if err != nil {
		return err
	}
	slog.Info("継続性レコードをリセットしたのだ", "file", appCtx.Config.ContinuityFile)
	return runner.WriteJSON("-", rec, stdout)
}

func overlayPatch(base, top domain.ContinuityPatch) domain.ContinuityPatch {
	if top.Background != nil {
		base.Background = top.Background
	}
	if top.Palette != nil {
		base.Palette = top.Palette
	}
	if top.Wardrobe != nil {
		base.Wardrobe = top.Wardrobe
	}
	if top.ProductDNA != nil {
		base.ProductDNA = top.ProductDNA
	}
	if top.Character != nil {
		base.Character = top.Character
	}
	return base
}
