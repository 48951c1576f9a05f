package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
	"github.com/shouni/go-shot-prompt-kit/pkg/pipeline"
	"github.com/shouni/go-shot-prompt-kit/pkg/render"
)

// ContinuitySource は実行ごとに1回だけ読まれる継続性レコードの取得元です。
type ContinuitySource interface {
	Get(ctx context.Context) (domain.ContinuityRecord, error)
}

// StaticContinuity は固定の継続性レコードを返す ContinuitySource です。
type StaticContinuity domain.ContinuityRecord

// Get implements ContinuitySource.
func (s StaticContinuity) Get(_ context.Context) (domain.ContinuityRecord, error) {
	return domain.ContinuityRecord(s).Clone(), nil
}

// ScriptRunner は1本のスクリプトにプロンプトパイプラインを適用するためのインターフェースです。
type ScriptRunner interface {
	Run(ctx context.Context, script map[string]any) (pipeline.Result, error)
}

// CompileRunner は継続性のスナップショットを取得し、パイプラインを実行します。
type CompileRunner struct {
	continuity ContinuitySource
	renderer   *render.Renderer
	model      string
}

// NewCompileRunner は依存関係を注入して CompileRunner を初期化します。
func NewCompileRunner(src ContinuitySource, r *render.Renderer, model string) *CompileRunner {
	return &CompileRunner{
		continuity: src,
		renderer:   r,
		model:      model,
	}
}

// Run はスクリプトをコンパイルします。エラーになるのは継続性の取得に失敗した場合だけです。
func (cr *CompileRunner) Run(ctx context.Context, script map[string]any) (pipeline.Result, error) {
	snapshot, err := cr.continuity.Get(ctx)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("継続性レコードの取得に失敗しました: %w", err)
	}
	return cr.compile(script, snapshot), nil
}

func (cr *CompileRunner) compile(script map[string]any, snapshot domain.ContinuityRecord) pipeline.Result {
	res := pipeline.ApplyPromptPipeline(script, snapshot, pipeline.Options{
		Model:    cr.model,
		Renderer: cr.renderer,
	})
	for _, w := range res.Warnings {
		slog.Warn("QC warning", "run_id", res.Meta.RunID, "warning", w)
	}
	slog.Info("CompileRunner: Compiled script",
		"run_id", res.Meta.RunID,
		"model", res.Meta.Model,
		"shots", res.Meta.Shots,
		"warnings", res.Meta.Warnings)
	return res
}
