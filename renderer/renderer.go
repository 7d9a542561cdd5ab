package renderer

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
)

// Renderer 加载底图与字体并返回可绘制的画布，例如 PNG 或 PDF 输出的后端。
type Renderer interface {
	layout.Loader
	Name() string
}

// ResolvePath joins relative paths onto baseDir.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ReadFont returns the raw font bytes for font, either from the built-in set
// or from disk.
func ReadFont(font layout.FontResource, baseDir string) ([]byte, error) {
	if font.Src == "" {
		return nil, &layout.ResourceLoadError{Resource: font.Name, Err: fmt.Errorf("字体 %s 缺少 src", font.Name)}
	}
	if fonts.IsEmbedded(font.Src) {
		data, err := fonts.Load(font.Src)
		if err != nil {
			return nil, &layout.ResourceLoadError{Resource: font.Src, Err: err}
		}
		return data, nil
	}
	data, err := os.ReadFile(ResolvePath(font.Src, baseDir))
	if err != nil {
		return nil, &layout.ResourceLoadError{Resource: font.Src, Err: err}
	}
	return data, nil
}

// Background decodes the base image, or reports the explicit canvas size when
// res has no background.
func Background(res layout.Resources) (image.Image, int, int, error) {
	if res.Background == "" {
		if res.Width <= 0 || res.Height <= 0 {
			return nil, 0, 0, &layout.InvalidCanvasError{Width: res.Width, Height: res.Height}
		}
		return nil, res.Width, res.Height, nil
	}
	file, err := os.Open(ResolvePath(res.Background, res.BaseDir))
	if err != nil {
		return nil, 0, 0, &layout.ResourceLoadError{Resource: res.Background, Err: err}
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, 0, &layout.ResourceLoadError{Resource: res.Background, Err: fmt.Errorf("解码图片失败: %w", err)}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, 0, 0, &layout.InvalidCanvasError{Width: b.Dx(), Height: b.Dy()}
	}
	return img, b.Dx(), b.Dy(), nil
}

// Color converts a layout colour to an opaque RGBA value.
func Color(c layout.Color) color.Color {
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 0xff}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
