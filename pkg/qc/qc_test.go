package qc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-shot-prompt-kit/pkg/domain"
)

func TestValidateAndFix(t *testing.T) {
	t.Run("camera がない場合に必須項目が埋まること", func(t *testing.T) {
		res := ValidateAndFix(domain.ShotAST{})
		got := res.Value
		if got.Camera == nil {
			t.Fatal("camera が生成されていません")
		}
		if got.Camera.Shot != DefaultShotType || got.Camera.Lens != StandardLens || got.Camera.Angle != DefaultAngle {
			t.Errorf("camera の既定値が違います: %+v", got.Camera)
		}
		if diff := cmp.Diff(domain.DefaultLighting(), *got.Lighting); diff != "" {
			t.Errorf("lighting (-want +got):\n%s", diff)
		}
		if got.Negatives == nil {
			t.Error("negatives が nil のままです")
		}
		if len(res.Warnings) != 4 {
			t.Errorf("警告は shot / lens / angle / lighting の4件のはずです: %v", res.Warnings)
		}
	})

	t.Run("クローズアップのレンズ既定値はポートレートレンズであること", func(t *testing.T) {
		res := ValidateAndFix(domain.ShotAST{Camera: &domain.Camera{Shot: "Extreme CLOSE-UP"}})
		if res.Value.Camera.Lens != PortraitLens {
			t.Errorf("lens = %q", res.Value.Camera.Lens)
		}
	})

	t.Run("クローズアップと超広角レンズの矛盾を修復すること", func(t *testing.T) {
		for _, lens := range []string{"16mm", "24 mm wide", "14MM rectilinear", "28mm"} {
			in := domain.ShotAST{
				Camera:   &domain.Camera{Shot: "close-up shot", Lens: lens, Angle: "eye-level"},
				Lighting: &domain.Lighting{Key: "hard"},
			}
			res := ValidateAndFix(in)
			if res.Value.Camera.Lens != PortraitLens {
				t.Errorf("lens %q が修復されていません: %q", lens, res.Value.Camera.Lens)
			}
			if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "ultrawide") {
				t.Errorf("lens %q の警告が違います: %v", lens, res.Warnings)
			}
		}
	})

	t.Run("超広角でない焦点距離は変更しないこと", func(t *testing.T) {
		for _, lens := range []string{"24-70mm zoom", "35mm", "135mm", "100mm macro"} {
			in := domain.ShotAST{
				Camera:   &domain.Camera{Shot: "close-up", Lens: lens, Angle: "high angle"},
				Lighting: &domain.Lighting{Key: "soft"},
			}
			res := ValidateAndFix(in)
			if res.Value.Camera.Lens != lens {
				t.Errorf("lens %q が変更されました: %q", lens, res.Value.Camera.Lens)
			}
			if len(res.Warnings) != 0 {
				t.Errorf("lens %q で警告が出ています: %v", lens, res.Warnings)
			}
		}
	})

	t.Run("クローズアップ以外の超広角は許容すること", func(t *testing.T) {
		in := domain.ShotAST{
			Camera:   &domain.Camera{Shot: "wide establishing shot", Lens: "16mm", Angle: "eye-level"},
			Lighting: &domain.Lighting{Key: "soft"},
		}
		res := ValidateAndFix(in)
		if res.Value.Camera.Lens != "16mm" {
			t.Errorf("lens が変更されました: %q", res.Value.Camera.Lens)
		}
	})

	t.Run("入力を変更しないこと", func(t *testing.T) {
		in := domain.ShotAST{Camera: &domain.Camera{Shot: "close-up", Lens: "16mm"}}
		_ = ValidateAndFix(in)
		if in.Camera.Lens != "16mm" || in.Camera.Angle != "" || in.Lighting != nil || in.Negatives != nil {
			t.Errorf("入力が変更されました: %+v", in)
		}
	})

	t.Run("冪等であること", func(t *testing.T) {
		inputs := []domain.ShotAST{
			{},
			{Camera: &domain.Camera{Shot: "close-up", Lens: "18mm"}},
			{Camera: &domain.Camera{Shot: "  "}, Negatives: []string{"blur"}},
		}
		for i, in := range inputs {
			first := ValidateAndFix(in)
			second := ValidateAndFix(first.Value)
			if len(second.Warnings) != 0 {
				t.Errorf("case %d: 2回目に警告が出ています: %v", i, second.Warnings)
			}
			if diff := cmp.Diff(first.Value, second.Value); diff != "" {
				t.Errorf("case %d: 2回目に AST が変わりました (-first +second):\n%s", i, diff)
			}
		}
	})
}
