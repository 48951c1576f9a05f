package render

import "strings"

// Target は描画先の生成モデルです。閉じた列挙で、未知の値は TargetAuto に倒します。
type Target int

const (
	TargetAuto Target = iota
	TargetImagen
	TargetGemini
	TargetImageFX
	TargetFlux
	TargetLeonardo
)

var targetNames = map[Target]string{
	TargetAuto:     "auto",
	TargetImagen:   "imagen",
	TargetGemini:   "gemini",
	TargetImageFX:  "imagefx",
	TargetFlux:     "flux",
	TargetLeonardo: "leonardo",
}

// Targets は定義済みのすべての描画先を宣言順に返します。
func Targets() []Target {
	return []Target{TargetAuto, TargetImagen, TargetGemini, TargetImageFX, TargetFlux, TargetLeonardo}
}

// ParseTarget はモデル識別子を Target に変換します。大文字小文字は区別せず、未知の値は TargetAuto です。
func ParseTarget(s string) Target {
	t, _ := lookupTargetName(strings.ToLower(strings.TrimSpace(s)))
	return t
}

// String implements fmt.Stringer.
func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return targetNames[TargetAuto]
}
