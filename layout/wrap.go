package layout

import (
	"strings"
	"unicode/utf8"
)

const tabSize = 8

// Dedent 去掉所有非空行共同的行首缩进，仅含空白的行会被清空。
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for i, line := range lines {
		if strings.Trim(line, " \t") == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// Wrap 使用贪心算法按字符数折行：只在空白处断开，行首行尾的空白会被丢弃，
// 只有单个词超过 width 时才在词内拆分。返回的行均不含换行符。
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	chunks := splitChunks(normalizeWhitespace(expandTabs(text)))

	var lines []string
	for len(chunks) > 0 {
		var current []string
		currentLen := 0

		// 除首行外，行首的空白直接丢弃
		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}
		for len(chunks) > 0 {
			n := utf8.RuneCountInString(chunks[0])
			if currentLen+n > width {
				break
			}
			current = append(current, chunks[0])
			currentLen += n
			chunks = chunks[1:]
		}

		// 超长的词：用本行剩余空间切下一段，其余留到下一行
		if len(chunks) > 0 && utf8.RuneCountInString(chunks[0]) > width {
			runes := []rune(chunks[0])
			spaceLeft := width - currentLen
			current = append(current, string(runes[:spaceLeft]))
			chunks[0] = string(runes[spaceLeft:])
		}

		if len(current) > 0 && isBlank(current[len(current)-1]) {
			current = current[:len(current)-1]
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, ""))
		}
	}
	return lines
}

// QuoteBlock 对引文做缩进清理、折行并在首尾加上直双引号。
func QuoteBlock(text string, width int) string {
	return `"` + strings.Join(Wrap(Dedent(text), width), "\n") + `"`
}

// splitChunks 将文本拆成交替的空白段与非空白段。
func splitChunks(s string) []string {
	var chunks []string
	var builder strings.Builder
	lastWasSpace := false
	for _, r := range s {
		isSpace := r == ' '
		if builder.Len() > 0 && lastWasSpace != isSpace {
			chunks = append(chunks, builder.String())
			builder.Reset()
		}
		lastWasSpace = isSpace
		builder.WriteRune(r)
	}
	if builder.Len() > 0 {
		chunks = append(chunks, builder.String())
	}
	return chunks
}

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var builder strings.Builder
	column := 0
	for _, r := range s {
		switch r {
		case '\t':
			pad := tabSize - column%tabSize
			builder.WriteString(strings.Repeat(" ", pad))
			column += pad
		case '\n', '\r':
			builder.WriteRune(r)
			column = 0
		default:
			builder.WriteRune(r)
			column++
		}
	}
	return builder.String()
}

// normalizeWhitespace 将每个 ASCII 空白字符替换为一个空格。
func normalizeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\v', '\f', '\r':
			return ' '
		}
		return r
	}, s)
}

func isBlank(s string) bool { return strings.Trim(s, " ") == "" }
