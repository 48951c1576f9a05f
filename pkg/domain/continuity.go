package domain

// ContinuityRecord はスクリプト全体で視覚的な一貫性を保つための既定状態です。
// 生ショットが指定しなかった項目だけに適用されます。
type ContinuityRecord struct {
	Background string     `json:"background" yaml:"background"`
	Palette    StringList `json:"palette" yaml:"palette"`
	Wardrobe   string     `json:"wardrobe" yaml:"wardrobe"`
	ProductDNA *Product   `json:"productDNA" yaml:"productDNA"`
	Character  *Character `json:"character" yaml:"character"`
}

// DefaultContinuity は永続化された状態がないときに使う組み込みの既定値です。
func DefaultContinuity() ContinuityRecord {
	return ContinuityRecord{
		Background: "seamless neutral studio backdrop",
		Palette:    StringList{"warm white", "soft beige", "graphite"},
	}
}

// Clone はレコードの複製を返します。
func (c ContinuityRecord) Clone() ContinuityRecord {
	out := c
	out.Palette = StringList(cloneStrings(c.Palette))
	out.ProductDNA = c.ProductDNA.Clone()
	out.Character = c.Character.Clone()
	return out
}

// ContinuityPatch は ContinuityRecord への部分更新です。nil の項目は変更しません。
type ContinuityPatch struct {
	Background *string    `json:"background,omitempty" yaml:"background,omitempty"`
	Palette    StringList `json:"palette,omitempty" yaml:"palette,omitempty"`
	Wardrobe   *string    `json:"wardrobe,omitempty" yaml:"wardrobe,omitempty"`
	ProductDNA *Product   `json:"productDNA,omitempty" yaml:"productDNA,omitempty"`
	Character  *Character `json:"character,omitempty" yaml:"character,omitempty"`
}

// IsEmpty は更新対象の項目が一つもないかどうかを返します。
func (p ContinuityPatch) IsEmpty() bool {
	return p.Background == nil && p.Palette == nil && p.Wardrobe == nil &&
		p.ProductDNA == nil && p.Character == nil
}

// Merge はパッチを浅くマージした新しいレコードを返します。元のレコードは変更しません。
func (c ContinuityRecord) Merge(p ContinuityPatch) ContinuityRecord {
	out := c.Clone()
	if p.Background != nil {
		out.Background = *p.Background
	}
	if p.Palette != nil {
		out.Palette = StringList(cloneStrings(p.Palette))
	}
	if p.Wardrobe != nil {
		out.Wardrobe = *p.Wardrobe
	}
	if p.ProductDNA != nil {
		out.ProductDNA = p.ProductDNA.Clone()
	}
	if p.Character != nil {
		out.Character = p.Character.Clone()
	}
	return out
}
