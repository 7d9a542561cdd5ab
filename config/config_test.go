package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/publish"
	"github.com/ByLCY/quotecard/quote"
)

const dailyCard = `
card daily v1 {
  canvas {
    src: "quote_base_image.png"
    color: #fff
  }
  font quote { src: "InriaSerif-Light.ttf"; size: 30 }
  font author { src: "InriaSerif-BoldItalic.ttf"; style: "BoldItalic" }
  layout {
    max-chars: 200
    line-height: 48px
    reset-font: true
  }
  source {
    url: "http://localhost:9000/quotes/random"
    min-length: 60
    tags: "tags.json"
    timeout: "5s"
  }
  publish {
    dir: "out"
    file: "today"
    format: jpeg
    caption: "${quote} ~ ${author}"
  }
}
`

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Resources.Width != 1080 || cfg.Resources.Height != 1080 || cfg.Resources.Background != "" {
		t.Fatalf("unexpected default canvas: %+v", cfg.Resources)
	}
	if cfg.Resources.QuoteFont.Src != fonts.QuoteSrc || cfg.Resources.AuthorFont.Src != fonts.AuthorSrc {
		t.Fatalf("defaults must use built-in fonts: %+v", cfg.Resources)
	}
	if cfg.Source.URL != quote.DefaultURL || cfg.Source.MinLength != 80 || cfg.Source.MaxLength != 400 {
		t.Fatalf("unexpected default source: %+v", cfg.Source)
	}
	if cfg.Publish.Caption != publish.DefaultCaption {
		t.Fatalf("unexpected default caption %q", cfg.Publish.Caption)
	}
	if got, want := cfg.Publish.Path(), "quote(today).png"; got != want {
		t.Fatalf("default path = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(cfg.Layout, layout.Options{}) {
		t.Fatalf("layout options should be left to the engine defaults: %+v", cfg.Layout)
	}
}

func TestParseCard(t *testing.T) {
	cfg, err := Parse(strings.NewReader(dailyCard), "cards")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Name != "daily" {
		t.Fatalf("unexpected name %q", cfg.Name)
	}

	res := cfg.Resources
	if res.BaseDir != "cards" || res.Background != "quote_base_image.png" {
		t.Fatalf("unexpected canvas: %+v", res)
	}
	if res.TextColor != (layout.Color{R: 255, G: 255, B: 255}) {
		t.Fatalf("short hex colour not expanded: %+v", res.TextColor)
	}
	if res.QuoteFont.Src != "InriaSerif-Light.ttf" || res.AuthorFont.Style != "BoldItalic" {
		t.Fatalf("unexpected fonts: %+v %+v", res.QuoteFont, res.AuthorFont)
	}

	opts := cfg.Layout
	if opts.QuoteFontSize != 30 || opts.MaxCharLength != 200 || opts.LineHeight != 48 || !opts.ResetFontPerCall {
		t.Fatalf("unexpected layout options: %+v", opts)
	}

	src := cfg.Source
	if src.URL != "http://localhost:9000/quotes/random" || src.MinLength != 60 || src.MaxLength != quote.DefaultMaxLength {
		t.Fatalf("unexpected source: %+v", src)
	}
	if src.TagsFile != filepath.Join("cards", "tags.json") || src.Timeout != 5*time.Second {
		t.Fatalf("unexpected source tags/timeout: %+v", src)
	}

	if got, want := cfg.Publish.Path(), filepath.Join("cards", "out", "today.jpg"); got != want {
		t.Fatalf("publish path = %q, want %q", got, want)
	}
	if cfg.Publish.Caption != "${quote} ~ ${author}" {
		t.Fatalf("caption placeholders must survive parsing, got %q", cfg.Publish.Caption)
	}
}

func TestParseInlineTags(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`card c v1 { source { tags: ["wisdom", "life"] } }`), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Source.Tags, []string{"wisdom", "life"}) || cfg.Source.TagsFile != "" {
		t.Fatalf("unexpected tags: %+v", cfg.Source)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown section": `card c v1 { watermark { text: "x" } }`,
		"unknown key":     `card c v1 { canvas { opacity: 1 } }`,
		"bad font role":   `card c v1 { font title { size: 12 } }`,
		"bad number":      `card c v1 { layout { wrap: forty } }`,
		"bad colour":      `card c v1 { canvas { fill: "#12" } }`,
		"bad format":      `card c v1 { publish { format: bmp } }`,
		"bad duration":    `card c v1 { source { timeout: "soon" } }`,
		"syntax":          `card c { }`,
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input), ""); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadUsesFileDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.card")
	if err := os.WriteFile(path, []byte(`card c v1 { canvas { src: "bg.png" } }`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Resources.BaseDir != dir {
		t.Fatalf("base dir = %q, want %q", cfg.Resources.BaseDir, dir)
	}
	if _, err := Load(filepath.Join(dir, "missing.card")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPublishPath(t *testing.T) {
	cases := []struct {
		p    Publish
		want string
	}{
		{Publish{Dir: "out", File: "card", Format: layout.FormatPDF}, filepath.Join("out", "card.pdf")},
		{Publish{Dir: "out", File: "card", Format: layout.FormatJPEG}, filepath.Join("out", "card.jpg")},
		{Publish{File: "card.webp", Format: layout.FormatPNG}, "card.webp"},
	}
	for _, c := range cases {
		if got := c.p.Path(); got != c.want {
			t.Fatalf("Path(%+v) = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#181A21")
	if err != nil || c != (layout.Color{R: 24, G: 26, B: 33}) {
		t.Fatalf("parseColor = %+v, %v", c, err)
	}
	if _, err := parseColor("#zzzzzz"); err == nil {
		t.Fatalf("expected error for non-hex colour")
	}
}
