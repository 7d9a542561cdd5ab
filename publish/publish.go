package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ByLCY/quotecard/binding"
	"github.com/ByLCY/quotecard/quote"
)

// DefaultCaption is the post text used when none is configured.
const DefaultCaption = "Today's beautiful quote by, ${author} "

// Publisher posts an exported image together with a caption.
type Publisher interface {
	Publish(ctx context.Context, imagePath, caption string) error
}

// Caption renders template against q; ${quote}, ${author} and ${tags} are available.
func Caption(template string, q quote.Quote) string {
	if template == "" {
		template = DefaultCaption
	}
	return binding.Interpolate(template, map[string]any{
		"quote":  q.Content,
		"author": q.Author,
		"tags":   strings.Join(q.Tags, ", "),
	})
}

// Dir leaves the caption next to the image as <image>.txt, for a separate
// uploader to pick up.
type Dir struct{}

// Publish implements Publisher.
func (Dir) Publish(ctx context.Context, imagePath, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("待发布的图像不存在: %w", err)
	}
	if err := os.WriteFile(imagePath+".txt", []byte(caption+"\n"), 0o644); err != nil {
		return fmt.Errorf("写入配文失败: %w", err)
	}
	return nil
}

// Log only records the post.
type Log struct {
	Logger *slog.Logger
}

// Publish implements Publisher.
func (l Log) Publish(ctx context.Context, imagePath, caption string) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "publish", "image", imagePath, "caption", caption)
	return nil
}
