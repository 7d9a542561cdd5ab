package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/quotecard/dsl"
	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/publish"
	"github.com/ByLCY/quotecard/quote"
)

// 未提供底图时使用的纯色画布。
const (
	DefaultWidth  = 1080
	DefaultHeight = 1080
)

// Config 汇总一次出图所需的全部设置。
type Config struct {
	Name      string
	Resources layout.Resources
	Layout    layout.Options
	Source    quote.Options
	Publish   Publish
}

// Publish 描述输出文件与配文。
type Publish struct {
	Dir     string
	File    string
	Format  layout.Format
	Caption string
}

// Path 返回输出图像的完整路径。
func (p Publish) Path() string {
	name := p.File
	if filepath.Ext(name) == "" {
		ext := string(p.Format)
		if p.Format == layout.FormatJPEG {
			ext = "jpg"
		}
		name += "." + ext
	}
	return filepath.Join(p.Dir, name)
}

// Default 返回无需任何文件即可运行的配置：纯色画布与内置字体。
func Default() *Config {
	return &Config{
		Name: "default",
		Resources: layout.Resources{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Fill:       layout.Color{R: 24, G: 26, B: 33},
			TextColor:  layout.Color{R: 255, G: 255, B: 255},
			QuoteFont:  layout.FontResource{Name: "quote", Src: fonts.QuoteSrc},
			AuthorFont: layout.FontResource{Name: "author", Src: fonts.AuthorSrc, Style: "BoldItalic"},
		},
		Source: quote.Options{
			URL:       quote.DefaultURL,
			MinLength: quote.DefaultMinLength,
			MaxLength: quote.DefaultMaxLength,
		},
		Publish: Publish{
			Dir:     ".",
			File:    "quote(today)",
			Format:  layout.FormatPNG,
			Caption: publish.DefaultCaption,
		},
	}
}

// Load 读取卡片文件，相对路径以文件所在目录为基准。
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()
	return Parse(file, filepath.Dir(path))
}

// Parse 解析卡片内容并在默认配置上覆盖。
func Parse(r io.Reader, baseDir string) (*Config, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return FromDocument(doc, baseDir)
}

// FromDocument 将卡片 AST 转为配置，未知的段落或键会报错。
func FromDocument(doc *dsl.Document, baseDir string) (*Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	cfg := Default()
	cfg.Name = doc.Name
	cfg.Resources.BaseDir = baseDir

	for _, section := range doc.Sections {
		var err error
		switch section.Kind {
		case "canvas":
			err = applyCanvas(cfg, section)
		case "font":
			err = applyFont(cfg, section)
		case "layout":
			err = applyLayout(cfg, section)
		case "source":
			err = applySource(cfg, section, baseDir)
		case "publish":
			err = applyPublish(cfg, section, baseDir)
		default:
			err = fmt.Errorf("未知段落 %s", section.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%s 第 %d 行: %w", section.Kind, section.Pos.Line, err)
		}
	}
	return cfg, nil
}

func applyCanvas(cfg *Config, section *dsl.Section) error {
	return eachEntry(section, func(key string, val *dsl.Value) error {
		var err error
		switch key {
		case "src":
			cfg.Resources.Background = val.Text()
		case "width":
			cfg.Resources.Width, err = parseInt(val)
		case "height":
			cfg.Resources.Height, err = parseInt(val)
		case "fill":
			cfg.Resources.Fill, err = parseColor(val.Text())
		case "color":
			cfg.Resources.TextColor, err = parseColor(val.Text())
		default:
			return unknownKey(key)
		}
		return err
	})
}

func applyFont(cfg *Config, section *dsl.Section) error {
	var font *layout.FontResource
	var size *float64
	switch layout.FontRole(section.Name) {
	case layout.FontQuote:
		font, size = &cfg.Resources.QuoteFont, &cfg.Layout.QuoteFontSize
	case layout.FontAuthor:
		font, size = &cfg.Resources.AuthorFont, &cfg.Layout.AuthorFontSize
	default:
		return fmt.Errorf("字体名称必须为 quote 或 author，实际为 %q", section.Name)
	}
	return eachEntry(section, func(key string, val *dsl.Value) error {
		var err error
		switch key {
		case "src":
			font.Src = val.Text()
		case "style":
			font.Style = val.Text()
		case "size":
			*size, err = parseFloat(val)
		default:
			return unknownKey(key)
		}
		return err
	})
}

func applyLayout(cfg *Config, section *dsl.Section) error {
	return eachEntry(section, func(key string, val *dsl.Value) error {
		var err error
		switch key {
		case "max-chars":
			cfg.Layout.MaxCharLength, err = parseInt(val)
		case "wrap":
			cfg.Layout.WrapWidth, err = parseInt(val)
		case "line-height":
			cfg.Layout.LineHeight, err = parseFloat(val)
		case "author-gap":
			cfg.Layout.AuthorGap, err = parseFloat(val)
		case "justify":
			cfg.Layout.JustifyWidth, err = parseInt(val)
		case "reset-font":
			cfg.Layout.ResetFontPerCall, err = strconv.ParseBool(val.Text())
		default:
			return unknownKey(key)
		}
		return err
	})
}

func applySource(cfg *Config, section *dsl.Section, baseDir string) error {
	return eachEntry(section, func(key string, val *dsl.Value) error {
		var err error
		switch key {
		case "url":
			cfg.Source.URL = val.Text()
		case "min-length":
			cfg.Source.MinLength, err = parseInt(val)
		case "max-length":
			cfg.Source.MaxLength, err = parseInt(val)
		case "tags":
			// 数组为标签列表，字符串为标签文件路径
			if val.Array != nil {
				cfg.Source.Tags = cfg.Source.Tags[:0]
				for _, item := range val.Array.Values {
					cfg.Source.Tags = append(cfg.Source.Tags, item.Text())
				}
			} else {
				cfg.Source.TagsFile = resolve(val.Text(), baseDir)
			}
		case "timeout":
			cfg.Source.Timeout, err = time.ParseDuration(val.Text())
		default:
			return unknownKey(key)
		}
		return err
	})
}

func applyPublish(cfg *Config, section *dsl.Section, baseDir string) error {
	return eachEntry(section, func(key string, val *dsl.Value) error {
		var err error
		switch key {
		case "dir":
			cfg.Publish.Dir = resolve(val.Text(), baseDir)
		case "file":
			cfg.Publish.File = val.Text()
		case "format":
			cfg.Publish.Format, err = layout.ParseFormat(val.Text())
		case "caption":
			cfg.Publish.Caption = val.Text()
		default:
			return unknownKey(key)
		}
		return err
	})
}

func eachEntry(section *dsl.Section, fn func(key string, val *dsl.Value) error) error {
	if section.Block == nil {
		return nil
	}
	for _, entry := range section.Block.Entries {
		if err := fn(entry.Key, entry.Value); err != nil {
			return fmt.Errorf("%s: %w", entry.Key, err)
		}
	}
	return nil
}

func unknownKey(key string) error { return fmt.Errorf("未知配置项 %s", key) }

func resolve(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func parseFloat(val *dsl.Value) (float64, error) {
	f, err := strconv.ParseFloat(trimUnit(val.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("数值 %q 无法解析", val.Text())
	}
	return f, nil
}

func parseInt(val *dsl.Value) (int, error) {
	n, err := strconv.Atoi(trimUnit(val.Text()))
	if err != nil {
		return 0, fmt.Errorf("整数 %q 无法解析", val.Text())
	}
	return n, nil
}

func trimUnit(value string) string {
	for _, suffix := range []string{"px", "pt"} {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSuffix(value, suffix)
		}
	}
	return value
}

func parseColor(value string) (layout.Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return layout.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	return layout.Color{R: int(rgb >> 16 & 0xff), G: int(rgb >> 8 & 0xff), B: int(rgb & 0xff)}, nil
}
