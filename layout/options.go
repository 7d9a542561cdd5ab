package layout

// 默认排版参数。
const (
	DefaultMaxCharLength  = 180
	DefaultWrapWidth      = 40
	DefaultQuoteFontSize  = 32.0
	DefaultAuthorFontSize = 34.0
	DefaultLineHeight     = 50.0
	DefaultAuthorGap      = 50.0
	DefaultJustifyWidth   = 10

	// shrinkRatio 为超长引文时字号与行距的缩减比例。
	shrinkRatio = 0.2
	// authorGapPerLine 为超长引文时每个估算行额外增加的作者间距。
	authorGapPerLine = 5.0
	// startOffsetPerLine 为垂直居中时每个估算行上移的像素。
	startOffsetPerLine = 20.0
	// lineEstimateDivisor 为字符数估算行数时使用的除数。
	lineEstimateDivisor = 40
)

// Options 配置引擎的排版常量与可替换策略，零值字段使用默认值。
type Options struct {
	MaxCharLength  int
	WrapWidth      int
	QuoteFontSize  float64
	AuthorFontSize float64
	LineHeight     float64
	AuthorGap      float64
	JustifyWidth   int

	// ResetFontPerCall 为 true 时每次 Generate 都从基础字号重新计算；
	// 默认 false，超长引文的缩小会在同一实例上累积。
	ResetFontPerCall bool

	LineEstimator LineEstimator
	Justifier     Justifier
}

// LineEstimator 根据折行加引号后的字符数估算行数。
type LineEstimator func(length int) int

// CharLineEstimate 是默认的行数估算：字符数除以 40 向下取整。
func CharLineEstimate(length int) int {
	if length <= 0 {
		return 0
	}
	return length / lineEstimateDivisor
}

func (o Options) withDefaults() Options {
	if o.MaxCharLength <= 0 {
		o.MaxCharLength = DefaultMaxCharLength
	}
	if o.WrapWidth <= 0 {
		o.WrapWidth = DefaultWrapWidth
	}
	if o.QuoteFontSize <= 0 {
		o.QuoteFontSize = DefaultQuoteFontSize
	}
	if o.AuthorFontSize <= 0 {
		o.AuthorFontSize = DefaultAuthorFontSize
	}
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.AuthorGap <= 0 {
		o.AuthorGap = DefaultAuthorGap
	}
	if o.JustifyWidth <= 0 {
		o.JustifyWidth = DefaultJustifyWidth
	}
	if o.LineEstimator == nil {
		o.LineEstimator = CharLineEstimate
	}
	if o.Justifier == nil {
		o.Justifier = PadJustifier{}
	}
	return o
}

// Surface 是可绘制的画布，由渲染后端实现。
type Surface interface {
	// Size 返回画布的像素宽高。
	Size() (width, height int)
	// Reset 将画布恢复为未绘制文本的底图。
	Reset() error
	// DrawText 按指令绘制一行文本，(X, Y) 为文本包围盒中心。
	DrawText(in DrawInstruction) error
	// Save 将画布按指定格式写入 path。
	Save(path string, format Format) error
}

// Loader 负责一次性加载底图与字体，返回可绘制的 Surface。
type Loader interface {
	Load(res Resources) (Surface, error)
}
