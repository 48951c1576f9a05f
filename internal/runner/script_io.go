package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// 入力フォーマットの識別子です。
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DetectFormat は明示指定またはファイル拡張子から入力フォーマットを決定します。
func DetectFormat(path, explicit string) string {
	switch strings.ToLower(explicit) {
	case FormatYAML, "yml":
		return FormatYAML
	case FormatJSON:
		return FormatJSON
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeScript は JSON または YAML のスクリプトを JSON 互換のマップに変換します。
func DecodeScript(data []byte, format string) (map[string]any, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("スクリプト YAML のパースに失敗しました: %w", err)
		}
		// YAML の値を JSON の値表現（数値は float64）にそろえます
		normalized, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("スクリプト YAML を JSON に変換できません: %w", err)
		}
		data = normalized
	}

	var script map[string]any
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("スクリプト JSON のパースに失敗しました (抜粋: %q): %w", truncateString(string(data), 200), err)
	}
	if script == nil {
		script = map[string]any{}
	}
	return script, nil
}

// ReadInput はファイルまたは標準入力（"-"）から内容を読み込みます。
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("標準入力の読み込みに失敗しました: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	return data, nil
}

// WriteJSON は値を整形済み JSON としてファイルまたは標準出力（"-"）に書き出します。
func WriteJSON(path string, v any, stdout io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON のエンコードに失敗しました: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ファイル '%s' の書き込みに失敗しました: %w", path, err)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
