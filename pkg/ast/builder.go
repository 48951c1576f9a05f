package ast

import (
	"strings"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

// 生ショットにも継続性レコードにも値がないときのリテラル既定値です。
const (
	DefaultShotType = "medium shot"
)

var (
	// DefaultMood は mood 未指定時の既定値です。
	DefaultMood = []string{"calm", "premium"}
	// DefaultQuality は quality 未指定時の既定値です。
	DefaultQuality = []string{"photorealistic", "natural skin texture"}
)

// BuildAST は生ショットと継続性レコードから正規の ShotAST を構築します。
// 各項目は「生ショットの明示値 → 継続性の既定値 → リテラル既定値」の順で最初の非空値を採用します。
// レンズ・アングル・ライティングは QC 段が既定値と警告を付与するため、ここでは補完しません。
func BuildAST(raw domain.RawShot, cont domain.ContinuityRecord) domain.ShotAST {
	cam := raw.Camera
	if cam == nil {
		cam = &domain.RawCamera{}
	}

	return domain.ShotAST{
		Subject: domain.Subject{
			Product:   resolve(isNilPtr[domain.Product], raw.Product.Value, cont.ProductDNA).Clone(),
			Character: resolve(isNilPtr[domain.Character], raw.Character.Value, cont.Character).Clone(),
		},
		Scene: domain.Scene{
			VisualIdea:  resolve(isBlank, raw.VisualIdea.String(), raw.VisualIdeaCamel.String()),
			Description: resolve(isBlank, raw.SceneDescription.String(), raw.Scene.String()),
			Background:  resolve(isBlank, raw.Background.String(), strings.TrimSpace(cont.Background)),
		},
		Camera: &domain.Camera{
			Shot:     resolve(isBlank, cam.Shot.String(), raw.Shot.String(), DefaultShotType),
			Lens:     cam.Lens.String(),
			Angle:    cam.Angle.String(),
			Movement: resolve(isBlank, cam.Movement.String(), raw.Movement.String()),
		},
		Lighting:  raw.Lighting.Lighting(),
		Mood:      clone(resolve(isEmptyList, []string(raw.Mood), DefaultMood)),
		Wardrobe:  resolve(isBlank, raw.Wardrobe.String(), strings.TrimSpace(cont.Wardrobe)),
		Palette:   clone(resolve(isEmptyList, []string(raw.Palette), []string(cont.Palette), []string{})),
		Quality:   clone(resolve(isEmptyList, []string(raw.Quality), DefaultQuality)),
		Negatives: clone(resolve(isEmptyList, []string(raw.Negatives), []string(raw.NegativePrompt), []string{})),
	}
}

// MergeContinuity は AST のうち空のままの項目（背景・パレット・衣装・製品・人物）だけを
// 継続性レコードで埋めます。生ショットが明示した値は上書きしません。
func MergeContinuity(a domain.ShotAST, cont domain.ContinuityRecord) domain.ShotAST {
	out := a.Clone()
	out.Scene.Background = resolve(isBlank, out.Scene.Background, strings.TrimSpace(cont.Background))
	out.Palette = clone(resolve(isEmptyList, out.Palette, []string(cont.Palette), []string{}))
	out.Wardrobe = resolve(isBlank, out.Wardrobe, strings.TrimSpace(cont.Wardrobe))
	out.Subject.Product = resolve(isNilPtr[domain.Product], out.Subject.Product, cont.ProductDNA).Clone()
	out.Subject.Character = resolve(isNilPtr[domain.Character], out.Subject.Character, cont.Character).Clone()
	return out
}
