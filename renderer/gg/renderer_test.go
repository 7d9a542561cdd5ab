package ggrenderer

import (
	"errors"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/quotecard/layout"
)

func solidResources() layout.Resources {
	return layout.Resources{
		Width:      160,
		Height:     90,
		Fill:       layout.Color{R: 10, G: 10, B: 10},
		TextColor:  layout.Color{R: 255, G: 255, B: 255},
		QuoteFont:  layout.FontResource{Src: "embed:regular"},
		AuthorFont: layout.FontResource{Src: "embed:bolditalic"},
	}
}

func TestEngineExportsWithGG(t *testing.T) {
	dir := t.TempDir()
	engine, err := layout.NewEngine(NewRenderer(dir), solidResources(), layout.Options{})
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}

	early := filepath.Join(dir, "early", "quote.png")
	if err := engine.Export(early, layout.FormatPNG); err != nil {
		t.Fatalf("Export before Generate error: %v", err)
	}
	if _, err := os.Stat(early); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Export before Generate must not create a file, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Dir(early)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Export before Generate must not create the output directory, stat err=%v", err)
	}

	if _, err := engine.Generate("Stay hungry, stay foolish.", "Steve Jobs"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	pngPath := filepath.Join(dir, "quote.png")
	if err := engine.Export(pngPath, layout.FormatPNG); err != nil {
		t.Fatalf("Export png error: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 160 || cfg.Height != 90 {
		t.Fatalf("unexpected png size %dx%d", cfg.Width, cfg.Height)
	}

	jpgPath := filepath.Join(dir, "out", "quote.jpg")
	if err := engine.Export(jpgPath, layout.FormatJPEG); err != nil {
		t.Fatalf("Export jpeg error: %v", err)
	}
	jf, err := os.Open(jpgPath)
	if err != nil {
		t.Fatalf("open jpeg: %v", err)
	}
	defer jf.Close()
	if _, err := jpeg.DecodeConfig(jf); err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}

	if err := engine.Export(filepath.Join(dir, "quote.pdf"), layout.FormatPDF); err == nil {
		t.Fatalf("gg backend must reject pdf")
	}
}

func TestTextChangesPixels(t *testing.T) {
	surface, err := NewRenderer("").Load(solidResources())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	s := surface.(*Surface)
	in := layout.DrawInstruction{Text: "MMMM", X: 80, Y: 45, Font: layout.FontQuote, Size: 40, Anchor: layout.AnchorCenter}
	if err := s.DrawText(in); err != nil {
		t.Fatalf("DrawText error: %v", err)
	}
	if !hasBrightPixel(s) {
		t.Fatalf("expected drawn text around the anchor")
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if hasBrightPixel(s) {
		t.Fatalf("Reset must restore the plain background")
	}
}

func hasBrightPixel(s *Surface) bool {
	img := s.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 > 128 {
				return true
			}
		}
	}
	return false
}

func TestFaceCache(t *testing.T) {
	surface, err := NewRenderer("").Load(solidResources())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	s := surface.(*Surface)
	a, err := s.face(layout.FontQuote, 32)
	if err != nil {
		t.Fatalf("face error: %v", err)
	}
	b, _ := s.face(layout.FontQuote, 32)
	c, _ := s.face(layout.FontQuote, 25.6)
	if a != b || a == c || len(s.faces) != 2 {
		t.Fatalf("faces must be cached per role and size, have %d", len(s.faces))
	}
	if _, err := s.face(layout.FontRole("title"), 12); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestLoadMissingBackground(t *testing.T) {
	res := solidResources()
	res.Background = "nope.png"
	_, err := NewRenderer(t.TempDir()).Load(res)
	var loadErr *layout.ResourceLoadError
	if !errors.As(err, &loadErr) || loadErr.Resource != "nope.png" {
		t.Fatalf("expected ResourceLoadError for nope.png, got %v", err)
	}
}
