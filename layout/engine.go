package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Engine 根据引文长度计算折行、垂直居中与字号缩放，并把结果绘制到 Surface 上。
// Engine 不可并发使用：字号与行距是跨调用共享的可变状态。
type Engine struct {
	surface Surface
	width   float64
	height  float64
	opts    Options

	quoteSize float64
	increment float64
	spacing   float64
	generated bool
}

// NewEngine 通过 loader 一次性加载画布与字体。加载失败返回 *ResourceLoadError，
// 画布尺寸非正返回 *InvalidCanvasError。
func NewEngine(loader Loader, res Resources, opts Options) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("layout: 缺少资源加载器 Loader")
	}
	surface, err := loader.Load(res)
	if err != nil {
		var canvasErr *InvalidCanvasError
		var loadErr *ResourceLoadError
		if errors.As(err, &canvasErr) || errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &ResourceLoadError{Resource: res.Background, Err: err}
	}
	return NewEngineWithSurface(surface, opts)
}

// NewEngineWithSurface 使用已经加载好的 Surface 构造引擎。
func NewEngineWithSurface(surface Surface, opts Options) (*Engine, error) {
	if surface == nil {
		return nil, fmt.Errorf("layout: Surface 不能为空")
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return nil, &InvalidCanvasError{Width: w, Height: h}
	}
	opts = opts.withDefaults()
	return &Engine{
		surface:   surface,
		width:     float64(w),
		height:    float64(h),
		opts:      opts,
		quoteSize: opts.QuoteFontSize,
		increment: opts.LineHeight,
	}, nil
}

// Generate 排版并绘制一条引文与作者。任意输入字符串都不会导致错误，
// 只有 Surface 绘制失败才会返回 error。
func (e *Engine) Generate(quote, author string) (*Result, error) {
	e.generated = false
	e.spacing = 0
	if err := e.surface.Reset(); err != nil {
		return nil, fmt.Errorf("重置画布失败: %w", err)
	}

	text := QuoteBlock(quote, e.opts.WrapWidth)
	length := utf8.RuneCountInString(text)
	lineCount := e.opts.LineEstimator(length)
	startY := e.height/2 - startOffsetPerLine*float64(lineCount)

	if e.opts.ResetFontPerCall {
		e.quoteSize = e.opts.QuoteFontSize
	}
	shrunk := length > e.opts.MaxCharLength
	authorGap := e.opts.AuthorGap
	if shrunk {
		e.quoteSize -= shrinkRatio * e.quoteSize
		e.increment = e.opts.LineHeight - shrinkRatio*e.opts.LineHeight
		authorGap = e.opts.AuthorGap + authorGapPerLine*float64(lineCount)
	} else {
		e.increment = e.opts.LineHeight
	}

	res := &Result{
		Quote:      text,
		Author:     "~ " + author,
		Length:     length,
		LineCount:  lineCount,
		StartY:     startY,
		QuoteSize:  e.quoteSize,
		AuthorSize: e.opts.AuthorFontSize,
		Increment:  e.increment,
		AuthorGap:  authorGap,
		Shrunk:     shrunk,
	}
	Logger().Debug("layout: 引文排版",
		"length", length, "lines", lineCount, "startY", startY,
		"fontSize", e.quoteSize, "shrunk", shrunk)

	centerX := e.width / 2
	for _, line := range strings.Split(text, "\n") {
		in := DrawInstruction{
			Text:   e.opts.Justifier.Justify(line, e.opts.JustifyWidth),
			Source: line,
			X:      centerX,
			Y:      startY + e.spacing,
			Font:   FontQuote,
			Size:   e.quoteSize,
			Anchor: AnchorCenter,
		}
		if err := e.draw(res, in); err != nil {
			return nil, err
		}
		e.spacing += e.increment
	}

	authorLine := DrawInstruction{
		Text:   res.Author,
		Source: res.Author,
		X:      centerX,
		Y:      e.height/2 + e.spacing + authorGap,
		Font:   FontAuthor,
		Size:   e.opts.AuthorFontSize,
		Anchor: AnchorCenter,
	}
	if err := e.draw(res, authorLine); err != nil {
		return nil, err
	}

	e.generated = true
	return res, nil
}

func (e *Engine) draw(res *Result, in DrawInstruction) error {
	if err := e.surface.DrawText(in); err != nil {
		return fmt.Errorf("绘制文本 %q 失败: %w", in.Text, err)
	}
	res.Instructions = append(res.Instructions, in)
	return nil
}

// Export 在至少成功 Generate 一次后将画布写入 path；此前调用不做任何事。
func (e *Engine) Export(path string, format Format) error {
	if !e.generated {
		Logger().Debug("layout: 尚未生成图像，忽略导出", "path", path)
		return nil
	}
	if err := e.surface.Save(path, format); err != nil {
		return fmt.Errorf("导出图像 %s 失败: %w", path, err)
	}
	return nil
}

// Generated 报告最近一次 Generate 是否成功。
func (e *Engine) Generated() bool { return e.generated }

// QuoteFontSize 返回当前的引文字号（可能已被缩小）。
func (e *Engine) QuoteFontSize() float64 { return e.quoteSize }

// Size 返回画布宽高。
func (e *Engine) Size() (float64, float64) { return e.width, e.height }

// ParseFormat 解析导出格式名，空字符串视为 png。
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("不支持的图像格式 %q", name)
	}
}
