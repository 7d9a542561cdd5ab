package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Justifier 在绘制前调整单行文本的水平占位。
type Justifier interface {
	Justify(line string, width int) string
}

// JustifierFunc 让普通函数满足 Justifier。
type JustifierFunc func(line string, width int) string

func (f JustifierFunc) Justify(line string, width int) string { return f(line, width) }

// PadJustifier 在空白段中循环插入空格直到行长达到 width，
// 某一轮没有产生变化时停止，最后在左侧补空格右对齐到 width。
// 行长已不小于 width 时原样返回。
type PadJustifier struct{}

func (PadJustifier) Justify(line string, width int) string {
	for {
		missing := width - utf8.RuneCountInString(line)
		if missing <= 0 {
			break
		}
		next := widenSpaceRuns(line, missing)
		if next == line {
			break
		}
		line = next
	}
	if pad := width - utf8.RuneCountInString(line); pad > 0 {
		line = strings.Repeat(" ", pad) + line
	}
	return line
}

// widenSpaceRuns 在前 limit 个空白段的末尾各追加一个空格。
func widenSpaceRuns(s string, limit int) string {
	var builder strings.Builder
	inRun := false
	widened := 0
	for _, r := range s {
		space := unicode.IsSpace(r)
		if inRun && !space {
			builder.WriteByte(' ')
			widened++
			inRun = false
		}
		if space && widened < limit {
			inRun = true
		}
		builder.WriteRune(r)
	}
	if inRun {
		builder.WriteByte(' ')
	}
	return builder.String()
}
