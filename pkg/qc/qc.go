package qc

import (
	"regexp"
	"strings"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

// 修復時に使う既定値です。
const (
	DefaultShotType  = "medium shot"
	PortraitLens     = "85mm portrait lens"
	StandardLens     = "50mm standard lens"
	DefaultAngle     = "eye-level"
	closeShotKeyword = "close"
)

// ultrawideLensRegex は超広角の焦点距離（14/16/18/20/24/28mm）に一致します。
var ultrawideLensRegex = regexp.MustCompile(`(?i)\b(14|16|18|20|24|28)\s*mm\b`)

// ValidateAndFix は AST の構造的な不変条件を検証し、安全な既定値で修復します。
// 入力は変更せず、問題はすべて警告として返します。各ルールは冪等です。
func ValidateAndFix(a domain.ShotAST) domain.Outcome[domain.ShotAST] {
	out := a.Clone()
	res := domain.NewOutcome(out)

	if res.Value.Camera == nil {
		res.Value.Camera = &domain.Camera{}
	}
	cam := res.Value.Camera

	if strings.TrimSpace(cam.Shot) == "" {
		cam.Shot = DefaultShotType
		res = res.Warnf("camera.shot is empty; defaulted to %q", DefaultShotType)
	}

	if strings.TrimSpace(cam.Lens) == "" {
		cam.Lens = StandardLens
		if isCloseShot(cam.Shot) {
			cam.Lens = PortraitLens
		}
		res = res.Warnf("camera.lens is empty; defaulted to %q", cam.Lens)
	}

	if strings.TrimSpace(cam.Angle) == "" {
		cam.Angle = DefaultAngle
		res = res.Warnf("camera.angle is empty; defaulted to %q", DefaultAngle)
	}

	if res.Value.Lighting == nil {
		l := domain.DefaultLighting()
		res.Value.Lighting = &l
		res = res.Warnf("lighting is missing; applied soft key default (key %s, fill %s, bg %s)", l.Key, l.Fill, l.BG)
	}

	// クローズアップで超広角レンズならポートレートレンズに矯正します。
	if isCloseShot(cam.Shot) && ultrawideLensRegex.MatchString(cam.Lens) {
		prev := cam.Lens
		cam.Lens = PortraitLens
		res = res.Warnf("close shot %q conflicts with ultrawide lens %q; lens forced to %q", cam.Shot, prev, PortraitLens)
	}

	if res.Value.Negatives == nil {
		res.Value.Negatives = []string{}
	}

	return res
}

func isCloseShot(shot string) bool {
	return strings.Contains(strings.ToLower(shot), closeShotKeyword)
}
