package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ByLCY/quotecard/config"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/publish"
	"github.com/ByLCY/quotecard/quote"
	"github.com/ByLCY/quotecard/renderer"
	canvasrenderer "github.com/ByLCY/quotecard/renderer/canvas"
	ggrenderer "github.com/ByLCY/quotecard/renderer/gg"
)

func main() {
	cardPath := flag.String("config", "", "卡片配置文件路径（为空时使用内置默认值）")
	output := flag.String("out", "", "图像输出路径（覆盖配置中的 publish 设置）")
	format := flag.String("format", "", "图像格式：png/jpeg/pdf/svg")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	text := flag.String("quote", "", "直接使用的引文（为空时从接口获取）")
	author := flag.String("author", "", "配合 -quote 使用的作者")
	backend := flag.String("renderer", "canvas", "渲染后端：canvas 或 gg")
	publisher := flag.String("publish", "dir", "发布方式：dir、log 或 none")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	layout.SetLogger(logger)

	cfg, err := loadConfig(*cardPath)
	if err != nil {
		logger.Error("加载配置失败", "err", err)
		os.Exit(1)
	}
	if *format != "" {
		f, err := layout.ParseFormat(*format)
		if err != nil {
			logger.Error("参数错误", "err", err)
			os.Exit(2)
		}
		cfg.Publish.Format = f
	}

	r, err := newRenderer(*backend, cfg.Resources.BaseDir)
	if err != nil {
		logger.Error("参数错误", "err", err)
		os.Exit(2)
	}
	pub, err := newPublisher(*publisher, logger)
	if err != nil {
		logger.Error("参数错误", "err", err)
		os.Exit(2)
	}

	var src quote.Source
	if *text != "" {
		src = quote.Static{Content: *text, Author: *author}
	} else if src, err = quote.NewClient(cfg.Source, nil); err != nil {
		logger.Error("创建引文源失败", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := *output
	if path == "" {
		path = cfg.Publish.Path()
	}
	if err := run(ctx, cfg, src, r, pub, path, *debug); err != nil {
		logger.Error("生成失败", "err", err)
		os.Exit(1)
	}
	logger.Info("已生成图像", "path", path)
}

// run 串联取引文、排版、导出与发布。
func run(ctx context.Context, cfg *config.Config, src quote.Source, r renderer.Renderer, pub publish.Publisher, outputPath, debugPath string) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	q, err := src.Random(ctx)
	if err != nil {
		return fmt.Errorf("获取引文失败: %w", err)
	}
	slog.Debug("获取到引文", "author", q.Author, "length", len(q.Content))

	engine, err := layout.NewEngine(r, cfg.Resources, cfg.Layout)
	if err != nil {
		return fmt.Errorf("初始化排版引擎失败: %w", err)
	}
	result, err := engine.Generate(q.Content, q.Author)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	if debugPath != "" {
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if err := engine.Export(outputPath, cfg.Publish.Format); err != nil {
		return err
	}
	if pub == nil {
		return nil
	}
	if err := pub.Publish(ctx, outputPath, publish.Caption(cfg.Publish.Caption, q)); err != nil {
		return fmt.Errorf("发布失败: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newRenderer(name, baseDir string) (renderer.Renderer, error) {
	switch name {
	case "", "canvas":
		return canvasrenderer.NewRenderer(baseDir), nil
	case "gg":
		return ggrenderer.NewRenderer(baseDir), nil
	default:
		return nil, fmt.Errorf("未知渲染后端 %q", name)
	}
}

func newPublisher(name string, logger *slog.Logger) (publish.Publisher, error) {
	switch name {
	case "", "dir":
		return publish.Dir{}, nil
	case "log":
		return publish.Log{Logger: logger}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("未知发布方式 %q", name)
	}
}
