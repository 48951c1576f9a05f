package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestRawShot_JSON(t *testing.T) {
	t.Run("カンマ区切りのネガティブ指定が分割されること", func(t *testing.T) {
		var raw RawShot
		if err := json.Unmarshal([]byte(`{"negative_prompt": " blur, , text ,watermark "}`), &raw); err != nil {
			t.Fatalf("パースに失敗しました: %v", err)
		}
		want := StringList{"blur", "text", "watermark"}
		if diff := cmp.Diff(want, raw.NegativePrompt); diff != "" {
			t.Errorf("分割結果が違います (-want +got):\n%s", diff)
		}
	})

	t.Run("配列のネガティブ指定はそのまま渡されること", func(t *testing.T) {
		var raw RawShot
		if err := json.Unmarshal([]byte(`{"negatives": [" blur ", "text"]}`), &raw); err != nil {
			t.Fatalf("パースに失敗しました: %v", err)
		}
		want := StringList{" blur ", "text"}
		if diff := cmp.Diff(want, raw.Negatives); diff != "" {
			t.Errorf("配列が変更されています (-want +got):\n%s", diff)
		}
	})

	t.Run("文字列のカメラ指定はショット種別になること", func(t *testing.T) {
		var raw RawShot
		if err := json.Unmarshal([]byte(`{"camera": "close-up shot", "lighting": "window light"}`), &raw); err != nil {
			t.Fatalf("パースに失敗しました: %v", err)
		}
		if raw.Camera == nil || raw.Camera.Shot.String() != "close-up shot" {
			t.Errorf("ショット種別が違います: %+v", raw.Camera)
		}
		l := raw.Lighting.Lighting()
		if l == nil || l.Key != "window light" {
			t.Errorf("キーライトが違います: %+v", l)
		}
	})

	t.Run("型が合わない値でも失敗しないこと", func(t *testing.T) {
		input := `{"visual_idea": 42, "camera": 7, "product": "not an object", "mood": {"a": 1}, "wardrobe": null, "palette": ["#fff", 3, null, {"x": 1}]}`
		var raw RawShot
		if err := json.Unmarshal([]byte(input), &raw); err != nil {
			t.Fatalf("寛容なパースが失敗しました: %v", err)
		}
		if raw.VisualIdea.String() != "42" {
			t.Errorf("数値が文字列化されていません: %q", raw.VisualIdea)
		}
		if raw.Product.Value != nil {
			t.Errorf("不正な product は未設定になるべきです: %+v", raw.Product.Value)
		}
		if raw.Mood != nil {
			t.Errorf("オブジェクトの mood は未設定になるべきです: %v", raw.Mood)
		}
		if diff := cmp.Diff(StringList{"#fff", "3"}, raw.Palette); diff != "" {
			t.Errorf("palette が違います (-want +got):\n%s", diff)
		}
	})

	t.Run("空のライティングは未設定として扱うこと", func(t *testing.T) {
		var raw RawShot
		if err := json.Unmarshal([]byte(`{"lighting": {}}`), &raw); err != nil {
			t.Fatalf("パースに失敗しました: %v", err)
		}
		if raw.Lighting.Lighting() != nil {
			t.Error("空のライティングが nil になっていません")
		}
	})
}

func TestStringList_YAML(t *testing.T) {
	var patch ContinuityPatch
	input := "palette: warm white, teal\nwardrobe: blue suit\n"
	if err := yaml.Unmarshal([]byte(input), &patch); err != nil {
		t.Fatalf("YAML のパースに失敗しました: %v", err)
	}
	if diff := cmp.Diff(StringList{"warm white", "teal"}, patch.Palette); diff != "" {
		t.Errorf("palette が違います (-want +got):\n%s", diff)
	}
	if patch.Wardrobe == nil || *patch.Wardrobe != "blue suit" {
		t.Errorf("wardrobe が違います: %v", patch.Wardrobe)
	}
}

func TestCompactList(t *testing.T) {
	got := CompactList([]string{"", " blur ", "  ", "text"})
	if diff := cmp.Diff([]string{"blur", "text"}, got); diff != "" {
		t.Errorf("結果が違います (-want +got):\n%s", diff)
	}
	if got := CompactList(nil); got == nil || len(got) != 0 {
		t.Errorf("nil からは空のスライスを返すはずです: %#v", got)
	}
}
