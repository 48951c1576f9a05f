package render

import (
	"strings"
	"testing"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

func sampleAST() domain.ShotAST {
	return domain.ShotAST{
		Subject: domain.Subject{
			Product:   &domain.Product{Brand: "Acme", Model: "Glow Serum", Features: domain.StringList{"glass dropper"}, Colors: domain.StringList{"amber"}},
			Character: &domain.Character{Gender: "female", Age: "30s", SkinTone: "warm olive", Hair: "dark wavy", UniqueFeatures: domain.StringList{"freckles"}},
		},
		Scene:     domain.Scene{VisualIdea: "Model applies serum.", Description: "  bright   bathroom ", Background: "white tiles"},
		Camera:    &domain.Camera{Shot: "close-up shot", Lens: "85mm portrait lens", Angle: "eye-level", Movement: "slow orbit"},
		Lighting:  &domain.Lighting{Key: "soft 45°", Fill: "1/3", BG: "clean background"},
		Mood:      []string{"calm", "premium"},
		Wardrobe:  "white robe",
		Palette:   []string{"#f5efe6", "#c89f6b"},
		Quality:   []string{"photorealistic"},
		Negatives: []string{"plastic skin", "glassy eyes"},
	}
}

func assertClean(t *testing.T, s string) {
	t.Helper()
	if s == "" {
		t.Fatal("空の文字列が返されました")
	}
	if strings.Contains(s, "  ") {
		t.Errorf("連続した空白があります: %q", s)
	}
	if strings.TrimSpace(s) != s {
		t.Errorf("前後に空白があります: %q", s)
	}
	if strings.Contains(s, "..") || strings.Contains(s, ". .") {
		t.Errorf("空の句が残っています: %q", s)
	}
}

func TestRenderT2I(t *testing.T) {
	t.Run("すべての句が順番どおりに含まれること", func(t *testing.T) {
		got := RenderT2I(sampleAST(), TargetAuto)
		assertClean(t, got)

		order := []string{
			"Model applies serum",
			"Product identity (exact match): Acme Glow Serum; features: glass dropper; colors: amber",
			"Character identity (same person in every shot): female, 30s, warm olive skin tone, dark wavy hair, unique features: freckles",
			"Scene: bright bathroom",
			"Color palette: #f5efe6, #c89f6b",
			"Wardrobe: white robe",
			"Background (keep consistent across shots): white tiles",
			"Camera: close-up shot, 85mm portrait lens, eye-level angle",
			"Lighting: key soft 45°, fill 1/3, background clean background",
			"Mood: calm, premium",
			"Quality: photorealistic",
			"Avoid: plastic skin, glassy eyes",
		}
		pos := -1
		for _, want := range order {
			idx := strings.Index(got, want)
			if idx < 0 {
				t.Fatalf("%q が含まれていません: %q", want, got)
			}
			if idx <= pos {
				t.Errorf("%q の位置が順番どおりではありません", want)
			}
			pos = idx
		}
	})

	t.Run("空の AST でも汎用の既定値で生成されること", func(t *testing.T) {
		got := RenderT2I(domain.ShotAST{}, TargetAuto)
		assertClean(t, got)
		if !strings.Contains(got, "Quality: photorealistic, high detail") {
			t.Errorf("プロファイルの品質語が使われていません: %q", got)
		}
		if !strings.Contains(got, "Avoid: "+strings.Join(FallbackNegatives, ", ")) {
			t.Errorf("汎用ネガティブが使われていません: %q", got)
		}
	})

	t.Run("visualIdea がない場合は description を主指示文にすること", func(t *testing.T) {
		a := sampleAST()
		a.Scene.VisualIdea = ""
		got := RenderT2I(a, TargetAuto)
		if !strings.HasPrefix(got, "bright bathroom") {
			t.Errorf("description が先頭にありません: %q", got)
		}
		if strings.Contains(got, "Scene:") {
			t.Errorf("description が重複しています: %q", got)
		}
	})

	t.Run("描画先ごとに文体が変わること", func(t *testing.T) {
		a := sampleAST()
		if got := RenderT2I(a, TargetImagen); !strings.HasPrefix(got, "Photorealistic commercial photograph: Model applies serum") {
			t.Errorf("imagen の導入句がありません: %q", got)
		}
		if got := RenderT2I(a, TargetFlux); !strings.Contains(got, "Exclude: plastic skin") {
			t.Errorf("flux の見出しが違います: %q", got)
		}
	})

	t.Run("未知の描画先は auto として扱うこと", func(t *testing.T) {
		a := sampleAST()
		if RenderT2I(a, Target(99)) != RenderT2I(a, TargetAuto) {
			t.Error("未知の Target が auto と一致しません")
		}
		if RenderT2I(a, ParseTarget("midjourney")) != RenderT2I(a, TargetAuto) {
			t.Error("未知の識別子が auto と一致しません")
		}
	})

	t.Run("空白だけの要素は句に含めないこと", func(t *testing.T) {
		a := sampleAST()
		a.Palette = []string{"", " "}
		a.Mood = []string{" calm ", ""}
		a.Quality = []string{"  "}
		a.Negatives = []string{""}
		a.Subject.Product.Features = domain.StringList{" "}
		got := RenderT2I(a, TargetAuto)
		assertClean(t, got)
		if strings.Contains(got, "Color palette") || strings.Contains(got, "features:") {
			t.Errorf("空の句が出力されています: %q", got)
		}
		if !strings.Contains(got, "Mood: calm.") {
			t.Errorf("mood の空白が除かれていません: %q", got)
		}
		if !strings.Contains(got, "Avoid: "+strings.Join(FallbackNegatives, ", ")) {
			t.Errorf("空白だけのネガティブ語は既定値に置き換えるはずです: %q", got)
		}
		if strings.Contains(got, "Quality: ,") || strings.Contains(got, "Quality: .") {
			t.Errorf("quality の空白が残っています: %q", got)
		}
	})

	t.Run("決定論的であること", func(t *testing.T) {
		for _, target := range Targets() {
			a := sampleAST()
			first := RenderT2I(a, target)
			for i := 0; i < 3; i++ {
				if got := RenderT2I(sampleAST(), target); got != first {
					t.Fatalf("%s: 出力が一致しません\n%q\n%q", target, first, got)
				}
			}
			assertClean(t, first)
		}
	})
}

func TestRenderI2V(t *testing.T) {
	t.Run("camera.movement を使うこと", func(t *testing.T) {
		got := RenderI2V(sampleAST())
		assertClean(t, got)
		if !strings.Contains(got, "Camera movement: slow orbit") {
			t.Errorf("movement が反映されていません: %q", got)
		}
		if n := strings.Count(got, clauseSeparator); n != 4 {
			t.Errorf("5つの句のはずが区切りが %d 個です: %q", n, got)
		}
	})

	t.Run("movement がない場合は既定のプッシュインになること", func(t *testing.T) {
		got := RenderI2V(domain.ShotAST{})
		if !strings.Contains(got, "Camera movement: "+DefaultMovement) {
			t.Errorf("既定のカメラワークがありません: %q", got)
		}
		if !strings.HasPrefix(got, "Start from the provided still image") {
			t.Errorf("開始句が違います: %q", got)
		}
	})
}

func TestParseTarget(t *testing.T) {
	cases := map[string]Target{
		"":         TargetAuto,
		"auto":     TargetAuto,
		"Imagen":   TargetImagen,
		" gemini ": TargetGemini,
		"IMAGEFX":  TargetImageFX,
		"flux":     TargetFlux,
		"leonardo": TargetLeonardo,
		"dalle":    TargetAuto,
	}
	for in, want := range cases {
		if got := ParseTarget(in); got != want {
			t.Errorf("ParseTarget(%q) = %s, want %s", in, got, want)
		}
	}
	if Target(42).String() != "auto" {
		t.Errorf("未知の Target の文字列表現が auto ではありません")
	}
}

func TestLoadProfiles(t *testing.T) {
	t.Run("指定した項目だけを上書きすること", func(t *testing.T) {
		ps, err := LoadProfiles([]byte("flux:\n  lead: \"Raw photo:\"\n"))
		if err != nil {
			t.Fatalf("LoadProfiles に失敗しました: %v", err)
		}
		flux := ps.Lookup(TargetFlux)
		if flux.Lead != "Raw photo:" {
			t.Errorf("lead = %q", flux.Lead)
		}
		if flux.AvoidLabel != "Exclude" {
			t.Errorf("上書きしていない avoid_label が変わりました: %q", flux.AvoidLabel)
		}
		got := NewRenderer(ps).T2I(sampleAST(), TargetFlux)
		if !strings.HasPrefix(got, "Raw photo: Model applies serum") {
			t.Errorf("上書きしたプロファイルが使われていません: %q", got)
		}
	})

	t.Run("未知のモデルはエラーになること", func(t *testing.T) {
		if _, err := LoadProfiles([]byte("midjourney:\n  lead: x\n")); err == nil {
			t.Error("未知のモデルでエラーになりません")
		}
	})

	t.Run("上書きしても組み込みの表は変わらないこと", func(t *testing.T) {
		if _, err := LoadProfiles([]byte("auto:\n  quality: [grainy]\n")); err != nil {
			t.Fatalf("LoadProfiles に失敗しました: %v", err)
		}
		if got := DefaultProfiles().Lookup(TargetAuto).Quality[0]; got != "photorealistic" {
			t.Errorf("組み込みの表が変更されました: %q", got)
		}
	})
}
