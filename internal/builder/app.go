package builder

import (
	"fmt"
	"os"

	"github.com/shouni/go-shot-prompt-kit/internal/config"
	"github.com/shouni/go-shot-prompt-kit/internal/runner"
	kitconfig "github.com/shouni/go-shot-prompt-kit/pkg/config"
	"github.com/shouni/go-shot-prompt-kit/pkg/continuity"
	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
	"github.com/shouni/go-shot-prompt-kit/pkg/render"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   kitconfig.Config      // Configは、環境変数から読み込まれた設定です（モデル、継続性ファイルなど）。
	Options  config.CompileOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Store    *continuity.Store     // Storeは、継続性レコードの読み書きを担うアクセサです。
	Renderer *render.Renderer      // Rendererは、プロファイル表を適用済みの描画器です。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
// CLI フラグで指定された値は環境変数の設定より優先します。
func NewAppContext(cfg kitconfig.Config, opts config.CompileOptions) (*AppContext, error) {
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.ProfilesFile != "" {
		cfg.ProfilesFile = opts.ProfilesFile
	}
	if opts.ContinuityFile != "" {
		cfg.ContinuityFile = opts.ContinuityFile
	}
	if opts.Workers > 0 {
		cfg.BatchWorkers = opts.Workers
	}

	store, err := continuity.NewStore(continuity.NewFileBackend(cfg.ContinuityFile), cfg.ContinuityCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("継続性ストアの初期化に失敗しました: %w", err)
	}

	renderer, err := loadRenderer(cfg.ProfilesFile)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:   cfg,
		Options:  opts,
		Store:    store,
		Renderer: renderer,
	}, nil
}

// ContinuitySource は実行時に使う継続性の取得元を返す
// --no-continuity の場合は空のレコードを使います。
func (a *AppContext) ContinuitySource() runner.ContinuitySource {
	if a.Options.NoContinuity {
		return runner.StaticContinuity(domain.ContinuityRecord{})
	}
	return a.Store
}

func loadRenderer(path string) (*render.Renderer, error) {
	if path == "" {
		return render.NewRenderer(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("プロファイルファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	profiles, err := render.LoadProfiles(data)
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(profiles), nil
}
