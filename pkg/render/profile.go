package render

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile は描画先モデルごとの文体調整です。
type Profile struct {
	// Lead は主指示文の前に付ける導入句です。空なら付けません。
	Lead string `yaml:"lead"`
	// Quality は AST に quality がないときに使う品質語です。
	Quality []string `yaml:"quality"`
	// AvoidLabel はネガティブ句の見出しです。
	AvoidLabel string `yaml:"avoid_label"`
}

// Profiles は Target からプロファイルへの表です。
type Profiles map[Target]Profile

var defaultProfiles = Profiles{
	TargetAuto: {
		Quality:    []string{"photorealistic", "high detail", "natural lighting"},
		AvoidLabel: "Avoid",
	},
	TargetImagen: {
		Lead:       "Photorealistic commercial photograph:",
		Quality:    []string{"photorealistic", "high dynamic range", "natural skin texture", "sharp focus"},
		AvoidLabel: "Avoid",
	},
	TargetGemini: {
		Lead:       "Create a photorealistic image:",
		Quality:    []string{"photorealistic", "natural skin texture", "true-to-life color"},
		AvoidLabel: "Do not include",
	},
	TargetImageFX: {
		Lead:       "Cinematic still:",
		Quality:    []string{"cinematic", "photorealistic", "subtle film grain"},
		AvoidLabel: "Avoid",
	},
	TargetFlux: {
		Quality:    []string{"ultra realistic", "raw photo", "natural skin texture", "fine detail"},
		AvoidLabel: "Exclude",
	},
	TargetLeonardo: {
		Lead:       "Hyperrealistic photo:",
		Quality:    []string{"photorealistic", "studio quality", "detailed"},
		AvoidLabel: "Negative",
	},
}

// DefaultProfiles は組み込みのプロファイル表のコピーを返します。
func DefaultProfiles() Profiles {
	out := make(Profiles, len(defaultProfiles))
	for t, p := range defaultProfiles {
		out[t] = p.clone()
	}
	return out
}

// Lookup は Target のプロファイルを返します。未登録なら auto のプロファイルです。
func (ps Profiles) Lookup(t Target) Profile {
	if p, ok := ps[t]; ok {
		return p
	}
	if p, ok := ps[TargetAuto]; ok {
		return p
	}
	return defaultProfiles[TargetAuto]
}

// LoadProfiles は YAML で記述された上書き設定を組み込みの表に適用します。
// キーは定義済みのモデル識別子に限られ、未知のキーはエラーになります。
// 上書きは空でない項目だけに適用されます。
func LoadProfiles(data []byte) (Profiles, error) {
	var overrides map[string]Profile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("プロファイル YAML のパースに失敗しました: %w", err)
	}

	ps := DefaultProfiles()
	for key, o := range overrides {
		t, ok := lookupTargetName(key)
		if !ok {
			return nil, fmt.Errorf("未知の描画先モデルです: %q", key)
		}
		p := ps[t]
		if o.Lead != "" {
			p.Lead = o.Lead
		}
		if len(o.Quality) > 0 {
			p.Quality = append([]string{}, o.Quality...)
		}
		if o.AvoidLabel != "" {
			p.AvoidLabel = o.AvoidLabel
		}
		ps[t] = p
	}
	return ps, nil
}

func lookupTargetName(key string) (Target, bool) {
	for t, name := range targetNames {
		if name == key {
			return t, true
		}
	}
	return TargetAuto, false
}

func (p Profile) clone() Profile {
	p.Quality = append([]string{}, p.Quality...)
	return p
}
