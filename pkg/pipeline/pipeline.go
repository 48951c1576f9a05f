package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-shot-prompt-kit/pkg/ast"
	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
	"github.com/shouni/go-shot-prompt-kit/pkg/negatives"
	"github.com/shouni/go-shot-prompt-kit/pkg/qc"
	"github.com/shouni/go-shot-prompt-kit/pkg/render"

	"github.com/google/uuid"
)

// ショットに書き戻すフィールド名です。
const (
	FieldTextToImage    = "text_to_image_prompt"
	FieldImageToVideo   = "image_to_video_prompt"
	FieldNegativePrompt = "negative_prompt"
	FieldASTDebug       = "_ast"

	// FailureMarker は処理全体を素通しにしたときの警告の接頭辞です。
	FailureMarker = "[pipeline-failed]"
)

// Sections はスクリプトの物語セクションを処理順に並べたものです。
var Sections = []string{"hook", "body", "cta"}

// Options はパイプライン実行時の設定です。
type Options struct {
	// Model は描画先モデルの識別子です。空または未知の値は "auto" になります。
	Model string
	// Renderer は描画に使うプロファイル表を持つ Renderer です。nil なら組み込みの表を使います。
	Renderer *render.Renderer
	// Now は実行時刻の取得元です。nil なら time.Now を使います。
	Now func() time.Time
}

// Meta は実行ごとのメタデータです。
type Meta struct {
	RunID     string `json:"run_id"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
	Shots     int    `json:"shots"`
	Warnings  int    `json:"warnings"`
}

// Result はパイプライン1回分の結果です。呼び出し側が所有し、返却後は変更されません。
type Result struct {
	Script   map[string]any `json:"script"`
	Warnings []string       `json:"warnings"`
	Meta     Meta           `json:"meta"`
}

// ApplyPromptPipeline はスクリプト内のすべてのショットを AST 構築 → 継続性マージ → QC →
// ネガティブ補完 → 描画の順に処理し、プロンプトを書き込んだスクリプトのコピーを返します。
// 入力のスクリプトと継続性レコードは変更しません。この関数は panic を外に出さず、
// 想定外の失敗時は元のスクリプトと1件の警告を返します。
func ApplyPromptPipeline(script map[string]any, cont domain.ContinuityRecord, opts Options) (res Result) {
	target := render.ParseTarget(opts.Model)
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}

	meta := Meta{
		RunID:     uuid.NewString(),
		Model:     target.String(),
		Timestamp: now().UTC().Format(time.RFC3339),
	}

	defer func() {
		if r := recover(); r != nil {
			res = passThrough(script, meta, fmt.Errorf("panic: %v", r))
		}
	}()

	copied, err := deepCopy(script)
	if err != nil {
		return passThrough(script, meta, fmt.Errorf("failed to copy script: %w", err))
	}
	out, _ := copied.(map[string]any)
	if out == nil {
		out = map[string]any{}
	}

	c := &compiler{
		continuity: cont.Clone(),
		target:     target,
		renderer:   renderer,
		warnings:   []string{},
	}
	for _, name := range Sections {
		if err := c.compileSection(name, out); err != nil {
			return passThrough(script, meta, err)
		}
	}

	meta.Shots = c.shots
	meta.Warnings = len(c.warnings)
	if script == nil {
		out = nil
	}
	return Result{Script: out, Warnings: c.warnings, Meta: meta}
}

// passThrough は元のスクリプトを変更せずに返し、失敗を1件の警告として記録します。
func passThrough(script map[string]any, meta Meta, err error) Result {
	slog.Warn("プロンプトパイプラインに失敗したため入力をそのまま返します", "run_id", meta.RunID, "error", err)
	meta.Shots = 0
	meta.Warnings = 1
	return Result{
		Script:   script,
		Warnings: []string{fmt.Sprintf("%s %v", FailureMarker, err)},
		Meta:     meta,
	}
}

type compiler struct {
	continuity domain.ContinuityRecord
	target     render.Target
	renderer   *render.Renderer
	warnings   []string
	shots      int
}

// compileSection は1つのセクションのショット列を処理します。
// セクションがない、または shots が配列でない場合は何もしません。
func (c *compiler) compileSection(name string, script map[string]any) error {
	section, ok := script[name].(map[string]any)
	if !ok {
		return nil
	}
	shots, ok := section["shots"].([]any)
	if !ok {
		return nil
	}

	for i, s := range shots {
		label := fmt.Sprintf("[%s#%d]", name, i)
		shot, ok := s.(map[string]any)
		if !ok {
			return fmt.Errorf("%s shot is not an object (got %T)", label, s)
		}
		enriched, warnings := c.compileShot(label, shot)
		shots[i] = enriched
		c.warnings = append(c.warnings, warnings...)
		c.shots++
	}
	return nil
}

// compileShot は1ショットを処理します。このショット内の失敗は警告に変換し、
// ショットには空のショットから組み立てた3つのプロンプトだけを書き込みます。
// 他のショットの処理には影響しません。
func (c *compiler) compileShot(label string, shot map[string]any) (out map[string]any, warnings []string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("ショットの処理に失敗しました", "shot", label, "panic", r)
			out = c.minimalShot(shot)
			warnings = []string{fmt.Sprintf("%s shot enrichment failed: %v", label, r)}
		}
	}()

	raw, err := decodeRawShot(shot)
	if err != nil {
		return c.minimalShot(shot), []string{fmt.Sprintf("%s shot enrichment failed: %v", label, err)}
	}

	res := c.buildShotAST(raw)
	shotAST := res.Value

	debug, err := toJSONMap(shotAST)
	if err != nil {
		return c.minimalShot(shot), []string{fmt.Sprintf("%s shot enrichment failed: %v", label, err)}
	}

	out = c.writePrompts(shot, shotAST)
	out[FieldASTDebug] = debug

	slog.Debug("ショットをコンパイルしました", "shot", label, "camera", shotAST.Camera.Shot, "warnings", len(res.Warnings))

	warnings = make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, label+" "+w)
	}
	return out, warnings
}

// buildShotAST は AST 構築 → 継続性マージ → QC → ネガティブ補完を順に適用します。
func (c *compiler) buildShotAST(raw domain.RawShot) domain.Outcome[domain.ShotAST] {
	res := domain.NewOutcome(ast.BuildAST(raw, c.continuity))
	res = domain.Map(res, func(a domain.ShotAST) domain.ShotAST { return ast.MergeContinuity(a, c.continuity) })
	res = domain.Then(res, qc.ValidateAndFix)
	return domain.Map(res, fillNegatives)
}

// writePrompts はショットの浅いコピーに3つのプロンプトを書き込みます。
func (c *compiler) writePrompts(shot map[string]any, a domain.ShotAST) map[string]any {
	out := make(map[string]any, len(shot)+4)
	for k, v := range shot {
		out[k] = v
	}
	out[FieldTextToImage] = c.renderer.T2I(a, c.target)
	out[FieldImageToVideo] = c.renderer.I2V(a)
	out[FieldNegativePrompt] = strings.Join(domain.CompactList(a.Negatives), ", ")
	return out
}

// minimalShot は空のショットと継続性から組み立てたプロンプトを書き込みます。
// ここでも失敗した場合はショットをそのまま返します。
func (c *compiler) minimalShot(shot map[string]any) (out map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			out = shot
		}
	}()
	return c.writePrompts(shot, c.buildShotAST(domain.RawShot{}).Value)
}

// fillNegatives は QC 後もネガティブ語が空の場合に文脈から補完します。
func fillNegatives(a domain.ShotAST) domain.ShotAST {
	if len(domain.CompactList(a.Negatives)) == 0 {
		a.Negatives = negatives.Contextualize(a)
	}
	return a
}

func decodeRawShot(shot map[string]any) (domain.RawShot, error) {
	data, err := json.Marshal(shot)
	if err != nil {
		return domain.RawShot{}, fmt.Errorf("failed to encode shot: %w", err)
	}
	var raw domain.RawShot
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.RawShot{}, fmt.Errorf("failed to decode shot: %w", err)
	}
	return raw, nil
}
