package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

const (
	// DefaultMovement は camera.movement 未指定時のカメラワークです。
	DefaultMovement = "slow 5% push-in"
	clauseSeparator = ". "
)

// FallbackNegatives は AST にネガティブ語がないときの汎用リストです。
var FallbackNegatives = []string{"low quality", "blurry", "text", "watermark", "distorted anatomy"}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Renderer は ShotAST を生成モデル向けの自然言語プロンプトに変換します。
type Renderer struct {
	profiles Profiles
}

// NewRenderer は指定したプロファイル表で Renderer を生成します。nil の場合は組み込みの表を使います。
func NewRenderer(ps Profiles) *Renderer {
	if ps == nil {
		ps = DefaultProfiles()
	}
	return &Renderer{profiles: ps}
}

var defaultRenderer = NewRenderer(nil)

// RenderT2I は組み込みのプロファイル表で静止画プロンプトを生成します。
func RenderT2I(a domain.ShotAST, t Target) string {
	return defaultRenderer.T2I(a, t)
}

// RenderI2V は静止画から動画を生成するためのモーション指示を返します。
func RenderI2V(a domain.ShotAST) string {
	return defaultRenderer.I2V(a)
}

// T2I は静止画生成用のプロンプトを生成します。同じ AST と Target からは常に同じ文字列になります。
func (r *Renderer) T2I(a domain.ShotAST, t Target) string {
	profile := r.profiles.Lookup(t)

	header, fromIdea := headerClause(a.Scene)
	if header != "" && profile.Lead != "" {
		header = profile.Lead + " " + header
	}

	clauses := []string{
		header,
		productClause(a.Subject.Product),
		characterClause(a.Subject.Character),
	}
	if fromIdea {
		clauses = append(clauses, labeled("Scene", a.Scene.Description))
	}
	clauses = append(clauses,
		labeled("Color palette", joinList(a.Palette)),
		labeled("Wardrobe", a.Wardrobe),
		labeled("Background (keep consistent across shots)", a.Scene.Background),
		cameraClause(a.Camera),
		lightingClause(a.Lighting),
		labeled("Mood", joinList(a.Mood)),
		labeled("Quality", joinList(firstNonEmpty(a.Quality, profile.Quality))),
		labeled(profile.AvoidLabel, joinList(firstNonEmpty(a.Negatives, FallbackNegatives))),
	)

	return joinClauses(clauses)
}

// I2V は5つの句からなる固定構成のモーション指示を生成します。
func (r *Renderer) I2V(a domain.ShotAST) string {
	movement := DefaultMovement
	if a.Camera != nil && strings.TrimSpace(a.Camera.Movement) != "" {
		movement = a.Camera.Movement
	}

	return joinClauses([]string{
		"Start from the provided still image as the exact first frame",
		"Add natural micro-movements: subtle breathing, gentle blinking, slight hair and fabric motion",
		labeled("Camera movement", movement),
		"Keep framing stable and preserve subject identity, product details and background",
		"No cuts, no scene changes, no text overlays",
	})
}

// headerClause は主指示文を返します。visualIdea を使った場合は true を返します。
func headerClause(s domain.Scene) (string, bool) {
	if idea := strings.TrimSpace(s.VisualIdea); idea != "" {
		return idea, true
	}
	return strings.TrimSpace(s.Description), false
}

func productClause(p *domain.Product) string {
	if p == nil {
		return ""
	}
	name := strings.TrimSpace(p.Brand + " " + p.Model)
	parts := make([]string, 0, 3)
	if name != "" {
		parts = append(parts, name)
	}
	if features := joinList(p.Features); features != "" {
		parts = append(parts, "features: "+features)
	}
	if colors := joinList(p.Colors); colors != "" {
		parts = append(parts, "colors: "+colors)
	}
	return labeled("Product identity (exact match)", strings.Join(parts, "; "))
}

func characterClause(c *domain.Character) string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, 7)
	add := func(format, v string) {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, fmt.Sprintf(format, v))
		}
	}
	add("%s", c.Gender)
	add("%s", c.Age)
	add("%s", c.Ethnicity)
	add("%s skin tone", c.SkinTone)
	add("%s hair", c.Hair)
	add("%s eyes", c.Eyes)
	if unique := joinList(c.UniqueFeatures); unique != "" {
		parts = append(parts, "unique features: "+unique)
	}
	return labeled("Character identity (same person in every shot)", strings.Join(parts, ", "))
}

func cameraClause(c *domain.Camera) string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, v := range []string{c.Shot, c.Lens} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if angle := strings.TrimSpace(c.Angle); angle != "" {
		parts = append(parts, angle+" angle")
	}
	return labeled("Camera", strings.Join(parts, ", "))
}

func lightingClause(l *domain.Lighting) string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if v := strings.TrimSpace(l.Key); v != "" {
		parts = append(parts, "key "+v)
	}
	if v := strings.TrimSpace(l.Fill); v != "" {
		parts = append(parts, "fill "+v)
	}
	if v := strings.TrimSpace(l.BG); v != "" {
		parts = append(parts, "background "+v)
	}
	return labeled("Lighting", strings.Join(parts, ", "))
}

// labeled は値が空でなければ "Label: value" を返します。
func labeled(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if label == "" {
		return value
	}
	return label + ": " + value
}

// firstNonEmpty は空白以外の要素を持つ最初のリストを返します。
func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if l = domain.CompactList(l); len(l) > 0 {
			return l
		}
	}
	return nil
}

// joinList は空白だけの要素を除いて ", " で連結します。
func joinList(items []string) string {
	return strings.Join(domain.CompactList(items), ", ")
}

// joinClauses は空の句を除いて ". " で連結し、連続する空白を1つにまとめます。
func joinClauses(clauses []string) string {
	kept := make([]string, 0, len(clauses))
	for _, c := range clauses {
		c = strings.TrimRight(strings.TrimSpace(c), ". ")
		if c != "" {
			kept = append(kept, c)
		}
	}
	joined := strings.Join(kept, clauseSeparator)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(joined, " "))
}
