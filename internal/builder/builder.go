package builder

import (
	"github.com/shouni/go-shot-prompt-kit/internal/runner"
)

// BuildCompileRunner は単一スクリプトのコンパイルを担当する Runner を作成するのだ。
func BuildCompileRunner(appCtx *AppContext) *runner.CompileRunner {
	return runner.NewCompileRunner(appCtx.ContinuitySource(), appCtx.Renderer, appCtx.Config.Model)
}

// BuildBatchRunner は複数スクリプトの並列コンパイルを担当する Runner を作成するのだ。
func BuildBatchRunner(appCtx *AppContext) *runner.BatchRunner {
	return runner.NewBatchRunner(BuildCompileRunner(appCtx), appCtx.Options.Format, appCtx.Config.BatchWorkers)
}
