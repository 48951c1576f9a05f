package domain

import "fmt"

// Outcome は失敗しない処理段の結果です。値と、致命的でない警告の列を運びます。
type Outcome[T any] struct {
	Value    T
	Warnings []string
}

// NewOutcome は警告付きの Outcome を生成します。
func NewOutcome[T any](v T, warnings ...string) Outcome[T] {
	return Outcome[T]{Value: v, Warnings: append([]string{}, warnings...)}
}

// Warnf は警告を追加した Outcome を返します。
func (o Outcome[T]) Warnf(format string, args ...any) Outcome[T] {
	o.Warnings = append(append([]string{}, o.Warnings...), fmt.Sprintf(format, args...))
	return o
}

// Then は次の処理段を適用し、両段の警告を順番どおりに連結します。
func Then[A, B any](o Outcome[A], f func(A) Outcome[B]) Outcome[B] {
	next := f(o.Value)
	warnings := make([]string, 0, len(o.Warnings)+len(next.Warnings))
	warnings = append(warnings, o.Warnings...)
	warnings = append(warnings, next.Warnings...)
	return Outcome[B]{Value: next.Value, Warnings: warnings}
}

// Map は警告を出さない純粋な変換を適用します。
func Map[A, B any](o Outcome[A], f func(A) B) Outcome[B] {
	return Outcome[B]{Value: f(o.Value), Warnings: o.Warnings}
}
