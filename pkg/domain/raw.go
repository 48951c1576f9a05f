package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawShot は LLM が生成した、部分的にしか埋まっていない未検証のショット記述です。
// 同じ意味のフィールドが複数の名前で届くため、どれも任意項目として受け取ります。
type RawShot struct {
	VisualIdea       Text                `json:"visual_idea"`
	VisualIdeaCamel  Text                `json:"visualIdea"`
	Camera           *RawCamera          `json:"camera"`
	Shot             Text                `json:"shot"`
	Movement         Text                `json:"movement"`
	Lighting         *RawLighting        `json:"lighting"`
	Mood             StringList          `json:"mood"`
	Wardrobe         Text                `json:"wardrobe"`
	Palette          StringList          `json:"palette"`
	Quality          StringList          `json:"quality"`
	NegativePrompt   StringList          `json:"negative_prompt"`
	Negatives        StringList          `json:"negatives"`
	SceneDescription Text                `json:"scene_description"`
	Scene            Text                `json:"scene"`
	Background       Text                `json:"background"`
	Product          Optional[Product]   `json:"product"`
	Character        Optional[Character] `json:"character"`
}

// RawCamera はオブジェクトでも文字列でも受け付けるカメラ指定です。
// 文字列の場合はショット種別として扱います。
type RawCamera struct {
	Shot     Text `json:"shot"`
	Lens     Text `json:"lens"`
	Angle    Text `json:"angle"`
	Movement Text `json:"movement"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RawCamera) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var t Text
		if err := t.UnmarshalJSON(data); err != nil {
			return err
		}
		*c = RawCamera{Shot: t}
		return nil
	}
	type plain RawCamera
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*c = RawCamera{}
		return nil
	}
	*c = RawCamera(p)
	return nil
}

// RawLighting はオブジェクトでも文字列でも受け付けるライティング指定です。
// 文字列の場合はキーライトの記述として扱います。
type RawLighting struct {
	Key  Text `json:"key"`
	Fill Text `json:"fill"`
	BG   Text `json:"bg"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *RawLighting) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var t Text
		if err := t.UnmarshalJSON(data); err != nil {
			return err
		}
		*l = RawLighting{Key: t}
		return nil
	}
	type plain RawLighting
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*l = RawLighting{}
		return nil
	}
	*l = RawLighting(p)
	return nil
}

// Lighting は指定があれば正規化された Lighting を、空なら nil を返します。
func (l *RawLighting) Lighting() *Lighting {
	if l == nil {
		return nil
	}
	out := Lighting{Key: l.Key.String(), Fill: l.Fill.String(), BG: l.BG.String()}
	if out.IsZero() {
		return nil
	}
	return &out
}

// Text は文字列・数値・真偽値を文字列として受け取る寛容な型です。
// それ以外（オブジェクトや null）は空文字になります。
type Text string

// String は前後の空白を除いた値を返します。
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var list StringList
		if err := list.UnmarshalJSON(data); err != nil {
			return err
		}
		*t = Text(strings.Join(list, ", "))
	case '{', 'n':
		*t = ""
	default:
		*t = Text(scalarString(data))
	}
	return nil
}

// StringList は配列でもカンマ区切り文字列でも受け付ける文字列リストです。
// 配列はそのまま受け取り、文字列は分割して前後の空白と空要素を取り除きます。
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*l = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = SplitList(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 {
				continue
			}
			switch item[0] {
			case '"':
				var s string
				if err := json.Unmarshal(item, &s); err != nil {
					return err
				}
				out = append(out, s)
			case '{', '[', 'n':
				// 構造を持つ要素や null は文字列にできないため読み飛ばします。
			default:
				out = append(out, scalarString(item))
			}
		}
		*l = out
	default:
		*l = nil
	}
	return nil
}

// CompactList は前後の空白を取り除き、空になった要素を捨てた新しいスライスを返します。
func CompactList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SplitList はカンマ区切り文字列を分割し、前後の空白と空要素を取り除きます。
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Optional は形式が合わない値を未設定として扱う任意項目です。
type Optional[T any] struct {
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		o.Value = nil
		return nil
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

func isJSONString(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '"'
}

func scalarString(data []byte) string {
	s := string(data)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = SplitList(value.Value)
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
	default:
		*l = nil
	}
	return nil
}
