package domain

// Product は広告対象となる製品のアイデンティティ（ブランド・型番・特徴・色）です。
type Product struct {
	Brand    string     `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model    string     `json:"model,omitempty" yaml:"model,omitempty"`
	Features StringList `json:"features,omitempty" yaml:"features,omitempty"`
	Colors   StringList `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Character は登場人物の外見上のアイデンティティです。
type Character struct {
	Gender         string     `json:"gender,omitempty" yaml:"gender,omitempty"`
	Age            string     `json:"age,omitempty" yaml:"age,omitempty"`
	Ethnicity      string     `json:"ethnicity,omitempty" yaml:"ethnicity,omitempty"`
	SkinTone       string     `json:"skin_tone,omitempty" yaml:"skin_tone,omitempty"`
	Hair           string     `json:"hair,omitempty" yaml:"hair,omitempty"`
	Eyes           string     `json:"eyes,omitempty" yaml:"eyes,omitempty"`
	UniqueFeatures StringList `json:"unique_features,omitempty" yaml:"unique_features,omitempty"`
}

// Subject はショットの被写体（製品と人物）です。どちらも未設定を許容します。
type Subject struct {
	Product   *Product   `json:"product"`
	Character *Character `json:"character"`
}

// Scene はショットの主指示文と情景です。
type Scene struct {
	VisualIdea  string `json:"visualIdea"`
	Description string `json:"description,omitempty"`
	Background  string `json:"background,omitempty"`
}

// Camera はカメラ設定です。QC 後は Shot / Lens / Angle が必ず埋まります。
type Camera struct {
	Shot     string `json:"shot"`
	Lens     string `json:"lens"`
	Angle    string `json:"angle"`
	Movement string `json:"movement,omitempty"`
}

// Lighting はキー・フィル・背景のライティング記述子です。
type Lighting struct {
	Key  string `json:"key"`
	Fill string `json:"fill"`
	BG   string `json:"bg"`
}

// IsZero はすべての記述子が空かどうかを返します。
func (l Lighting) IsZero() bool {
	return l.Key == "" && l.Fill == "" && l.BG == ""
}

// DefaultLighting は正規のソフトキー・ライティングを返します。
func DefaultLighting() Lighting {
	return Lighting{Key: "soft 45°", Fill: "1/3", BG: "clean background"}
}

// ShotAST はモデル非依存の、1ショット分の正規化された中間表現です。
type ShotAST struct {
	Subject   Subject   `json:"subject"`
	Scene     Scene     `json:"scene"`
	Camera    *Camera   `json:"camera"`
	Lighting  *Lighting `json:"lighting"`
	Mood      []string  `json:"mood"`
	Wardrobe  string    `json:"wardrobe,omitempty"`
	Palette   []string  `json:"palette"`
	Quality   []string  `json:"quality"`
	Negatives []string  `json:"negatives"`
}

// Clone は AST の複製を返します。スライスとポインタの参照先も複製します。
func (a ShotAST) Clone() ShotAST {
	out := a
	out.Subject.Product = a.Subject.Product.Clone()
	out.Subject.Character = a.Subject.Character.Clone()
	if a.Camera != nil {
		c := *a.Camera
		out.Camera = &c
	}
	if a.Lighting != nil {
		l := *a.Lighting
		out.Lighting = &l
	}
	out.Mood = cloneStrings(a.Mood)
	out.Palette = cloneStrings(a.Palette)
	out.Quality = cloneStrings(a.Quality)
	out.Negatives = cloneStrings(a.Negatives)
	return out
}

// Clone は製品情報のコピーを返します。nil の場合は nil です。
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Features = StringList(cloneStrings(p.Features))
	c.Colors = StringList(cloneStrings(p.Colors))
	return &c
}

// Clone は人物情報のコピーを返します。nil の場合は nil です。
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cc := *c
	cc.UniqueFeatures = StringList(cloneStrings(c.UniqueFeatures))
	return &cc
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
