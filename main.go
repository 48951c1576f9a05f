package main

import (
	"github.com/shouni/go-shot-prompt-kit/cmd"
)

// main は shot-prompt CLI のエントリーポイントなのだ。
// フラグの解析とサブコマンドの実行は cmd パッケージに任せるのだよ。
func main() {
	cmd.Execute()
}
