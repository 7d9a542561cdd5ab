package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/renderer"
)

// Renderer loads quote cards onto github.com/tdewolff/canvas surfaces.
type Renderer struct {
	baseDir string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Surface    = (*Surface)(nil)
)

// Surface is a canvas with one unit per pixel. Text is drawn in a top-left
// origin coordinate system to match the layout engine.
type Surface struct {
	width, height int
	background    image.Image
	fill          layout.Color
	textColor     layout.Color
	families      map[layout.FontRole]*fontFamilyEntry

	c   *canvas.Canvas
	ctx *canvas.Context
}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return &Renderer{baseDir: baseDir} }

// Name implements renderer.Renderer.
func (r *Renderer) Name() string { return "canvas" }

// Load decodes the background and both fonts once.
func (r *Renderer) Load(res layout.Resources) (layout.Surface, error) {
	if res.BaseDir == "" {
		res.BaseDir = r.baseDir
	}
	bg, w, h, err := renderer.Background(res)
	if err != nil {
		return nil, err
	}
	s := &Surface{
		width:      w,
		height:     h,
		background: bg,
		fill:       res.Fill,
		textColor:  res.TextColor,
		families:   map[layout.FontRole]*fontFamilyEntry{},
	}
	for _, role := range []layout.FontRole{layout.FontQuote, layout.FontAuthor} {
		entry, err := loadFamily(res.Font(role), role, res.BaseDir)
		if err != nil {
			return nil, err
		}
		s.families[role] = entry
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	layout.Logger().Debug("canvas: 画布已加载", "width", w, "height", h, "background", res.Background)
	return s, nil
}

func loadFamily(font layout.FontResource, role layout.FontRole, baseDir string) (*fontFamilyEntry, error) {
	data, err := renderer.ReadFont(font, baseDir)
	if err != nil {
		return nil, err
	}
	name := font.Name
	if name == "" {
		name = string(role)
	}
	style := parseFontStyle(font.Style)
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, &layout.ResourceLoadError{Resource: font.Src, Err: err}
	}
	return &fontFamilyEntry{family: family, style: style}, nil
}

// Size implements layout.Surface.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Reset starts a fresh canvas holding only the background.
func (s *Surface) Reset() error {
	w, h := float64(s.width), float64(s.height)
	s.c = canvas.New(w, h)
	s.ctx = canvas.NewContext(s.c)
	if s.background != nil {
		s.ctx.DrawImage(0, 0, s.background, canvas.DPMM(1))
	} else {
		s.ctx.SetFillColor(renderer.Color(s.fill))
		s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		s.ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}
	// 之后的文本坐标以左上角为原点
	s.ctx.SetCoordSystem(canvas.CartesianIV)
	return nil
}

// DrawText draws in.Text centred on (in.X, in.Y) both horizontally and vertically.
func (s *Surface) DrawText(in layout.DrawInstruction) error {
	entry, ok := s.families[in.Font]
	if !ok {
		return fmt.Errorf("未加载字体 %s", in.Font)
	}
	face := entry.family.Face(layout.PixelsToPoints(in.Size), renderer.Color(s.textColor), entry.style, canvas.FontNormal)
	line := canvas.NewTextLine(face, in.Text, canvas.Center)

	// 基线位于包围盒中心下方 (ascent-descent)/2 处
	metrics := face.Metrics()
	baseline := in.Y + (metrics.Ascent-metrics.Descent)/2
	s.ctx.DrawText(in.X, baseline, line)
	return nil
}

// Save writes the canvas as PNG, JPEG, PDF or SVG.
func (s *Surface) Save(path string, format layout.Format) error {
	var w canvas.Writer
	switch format {
	case layout.FormatPNG, "":
		w = renderers.PNG(canvas.DPMM(1))
	case layout.FormatJPEG:
		w = renderers.JPEG(canvas.DPMM(1))
	case layout.FormatPDF:
		w = renderers.PDF()
	case layout.FormatSVG:
		w = renderers.SVG()
	default:
		return fmt.Errorf("canvas 后端不支持格式 %q", format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	return s.c.WriteFile(path, w)
}

// Image rasterises the current canvas at one pixel per unit.
func (s *Surface) Image() *image.RGBA {
	return rasterizer.Draw(s.c, canvas.DPMM(1), canvas.DefaultColorSpace)
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}
