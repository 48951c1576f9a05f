package ast

// resolve は候補を順に調べ、empty が false を返した最初の値を返します。
// すべて空の場合は最後の候補（既定値）を返します。
func resolve[T any](empty func(T) bool, candidates ...T) T {
	var zero T
	for _, c := range candidates {
		if !empty(c) {
			return c
		}
	}
	if len(candidates) == 0 {
		return zero
	}
	return candidates[len(candidates)-1]
}

func isBlank(s string) bool { return s == "" }

func isEmptyList(l []string) bool { return len(l) == 0 }

func isNilPtr[T any](p *T) bool { return p == nil }

func clone(l []string) []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l))
	copy(out, l)
	return out
}
