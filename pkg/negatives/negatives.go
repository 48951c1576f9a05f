package negatives

import (
	"strings"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

var (
	// BaseTerms はすべてのショットに適用する共通のネガティブ語です。
	BaseTerms = []string{
		"low quality", "text", "watermark", "over-processed", "over-sharpened",
		"doll-like face", "plastic skin", "extra fingers", "missing fingers",
	}
	// CloseUpTerms は顔のリアリティを損なうクローズアップ特有の破綻です。
	CloseUpTerms = []string{
		"waxy texture", "glassy eyes", "unnaturally smooth skin",
		"overly perfect symmetry", "AI eyelash artifacts",
	}
	// FullBodyTerms は全身ショット特有の歪みです。
	FullBodyTerms = []string{"warped limbs", "distorted torso", "unnatural body bend"}
	// ProductTerms はマクロ・製品撮影特有のアーティファクトです。
	ProductTerms = []string{"specular clipping", "chromatic aberration", "excessive bloom", "posterization"}
	// HandTerms は手元の描写で起こりがちな破綻です。
	HandTerms = []string{"melted fingers", "extra fingers", "missing fingers", "deformed nails"}
)

// rule はショット種別と指示文から判定する追加ルールです。
type rule struct {
	match func(shot, idea string) bool
	terms []string
}

var rules = []rule{
	{match: func(shot, _ string) bool { return strings.Contains(shot, "close") }, terms: CloseUpTerms},
	{match: func(shot, _ string) bool { return strings.Contains(shot, "full") }, terms: FullBodyTerms},
	{match: anyOf("macro", "product"), terms: ProductTerms},
	{match: anyOf("hand", "holding"), terms: HandTerms},
}

// Contextualize はショット種別と情景のキーワードから、重複のないネガティブ語の列を導出します。
// 共通語から始め、一致したルールの語を順に追加します。ルールは互いに排他ではありません。
func Contextualize(a domain.ShotAST) []string {
	var shot string
	if a.Camera != nil {
		shot = strings.ToLower(a.Camera.Shot)
	}
	idea := strings.ToLower(a.Scene.VisualIdea)

	set := newOrderedSet(BaseTerms)
	for _, r := range rules {
		if r.match(shot, idea) {
			set.add(r.terms...)
		}
	}
	return set.items
}

func anyOf(keywords ...string) func(shot, idea string) bool {
	return func(shot, idea string) bool {
		for _, k := range keywords {
			if strings.Contains(shot, k) || strings.Contains(idea, k) {
				return true
			}
		}
		return false
	}
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet(initial []string) *orderedSet {
	s := &orderedSet{seen: make(map[string]struct{}), items: make([]string, 0, len(initial)+8)}
	s.add(initial...)
	return s
}

func (s *orderedSet) add(terms ...string) {
	for _, t := range terms {
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.items = append(s.items, t)
	}
}
