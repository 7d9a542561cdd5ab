package layout

// 该文件定义布局结果与资源描述，供引擎、渲染后端与调试 JSON 共用。

// FontRole 标识绘制指令使用哪一套字体。
type FontRole string

const (
	FontQuote  FontRole = "quote"
	FontAuthor FontRole = "author"
)

// Anchor 描述 (x, y) 与文本包围盒的对应关系。
type Anchor string

// AnchorCenter 表示 (x, y) 为文本包围盒的中心点。
const AnchorCenter Anchor = "center-center"

// Format 为导出图像的格式。
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
)

// Resources 描述画布与字体资源。Background 为空时使用 Width/Height 与 Fill 生成纯色画布。
type Resources struct {
	BaseDir    string       `json:"baseDir,omitempty"`
	Background string       `json:"background,omitempty"`
	Width      int          `json:"width,omitempty"`
	Height     int          `json:"height,omitempty"`
	Fill       Color        `json:"fill"`
	TextColor  Color        `json:"textColor"`
	QuoteFont  FontResource `json:"quoteFont"`
	AuthorFont FontResource `json:"authorFont"`
}

// FontResource 描述字体资源，src 可以是文件路径或 embed:* 形式。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style,omitempty"`
}

// Font 返回角色对应的字体资源。
func (r Resources) Font(role FontRole) FontResource {
	if role == FontAuthor {
		return r.AuthorFont
	}
	return r.QuoteFont
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DrawInstruction 是一条已经算好坐标的绘制指令。
type DrawInstruction struct {
	Text   string   `json:"text"`             // 实际绘制的文本（经过微调对齐）
	Source string   `json:"source,omitempty"` // 对齐前的原始行
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Font   FontRole `json:"font"`
	Size   float64  `json:"size"`
	Anchor Anchor   `json:"anchor"`
}

// Result 记录一次 Generate 的中间量与最终绘制指令。
type Result struct {
	Quote        string            `json:"quote"` // 折行并加引号后的文本
	Author       string            `json:"author"`
	Length       int               `json:"length"`
	LineCount    int               `json:"lineCount"`
	StartY       float64           `json:"startY"`
	QuoteSize    float64           `json:"quoteSize"`
	AuthorSize   float64           `json:"authorSize"`
	Increment    float64           `json:"increment"`
	AuthorGap    float64           `json:"authorGap"`
	Shrunk       bool              `json:"shrunk"`
	Instructions []DrawInstruction `json:"instructions"`
}

// QuoteLines 返回引文部分的绘制指令（不含作者行）。
func (r *Result) QuoteLines() []DrawInstruction {
	if r == nil || len(r.Instructions) == 0 {
		return nil
	}
	return r.Instructions[:len(r.Instructions)-1]
}

// AuthorLine 返回作者行绘制指令。
func (r *Result) AuthorLine() DrawInstruction {
	if r == nil || len(r.Instructions) == 0 {
		return DrawInstruction{}
	}
	return r.Instructions[len(r.Instructions)-1]
}
