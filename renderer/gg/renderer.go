package ggrenderer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/renderer"
)

const jpegQuality = 92

// Renderer loads quote cards onto fogleman/gg raster contexts.
type Renderer struct {
	baseDir string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Surface    = (*Surface)(nil)
)

// Surface draws with gg, whose anchored string drawing gives center-center
// placement directly.
type Surface struct {
	width, height int
	background    image.Image
	fill          layout.Color
	textColor     layout.Color
	fonts         map[layout.FontRole]*truetype.Font
	faces         map[faceKey]font.Face

	dc *gg.Context
}

type faceKey struct {
	role layout.FontRole
	size float64
}

// NewRenderer creates a gg-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return &Renderer{baseDir: baseDir} }

// Name implements renderer.Renderer.
func (r *Renderer) Name() string { return "gg" }

// Load decodes the background and parses both fonts once.
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
		fonts:      map[layout.FontRole]*truetype.Font{},
		faces:      map[faceKey]font.Face{},
	}
	for _, role := range []layout.FontRole{layout.FontQuote, layout.FontAuthor} {
		fontRes := res.Font(role)
		data, err := renderer.ReadFont(fontRes, res.BaseDir)
		if err != nil {
			return nil, err
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, &layout.ResourceLoadError{Resource: fontRes.Src, Err: err}
		}
		s.fonts[role] = f
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	layout.Logger().Debug("gg: 画布已加载", "width", w, "height", h, "background", res.Background)
	return s, nil
}

// Size implements layout.Surface.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Reset copies the pristine background into a new context.
func (s *Surface) Reset() error {
	if s.background != nil {
		s.dc = gg.NewContextForImage(s.background)
		return nil
	}
	s.dc = gg.NewContext(s.width, s.height)
	s.dc.SetColor(renderer.Color(s.fill))
	s.dc.Clear()
	return nil
}

// DrawText draws in.Text anchored at its centre.
func (s *Surface) DrawText(in layout.DrawInstruction) error {
	face, err := s.face(in.Font, in.Size)
	if err != nil {
		return err
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(renderer.Color(s.textColor))
	s.dc.DrawStringAnchored(in.Text, in.X, in.Y, 0.5, 0.5)
	return nil
}

func (s *Surface) face(role layout.FontRole, size float64) (font.Face, error) {
	key := faceKey{role: role, size: size}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	f, ok := s.fonts[role]
	if !ok {
		return nil, fmt.Errorf("未加载字体 %s", role)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	s.faces[key] = face
	return face, nil
}

// Save writes the raster as PNG or JPEG.
func (s *Surface) Save(path string, format layout.Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	switch format {
	case layout.FormatPNG, "":
		return s.dc.SavePNG(path)
	case layout.FormatJPEG:
		return gg.SaveJPG(path, s.dc.Image(), jpegQuality)
	default:
		return fmt.Errorf("gg 后端不支持格式 %q", format)
	}
}

// Image returns the current raster.
func (s *Surface) Image() image.Image { return s.dc.Image() }
