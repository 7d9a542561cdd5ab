package layout

import (
	"strings"
	"testing"
)

func TestPadJustifier(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		// 已超过目标宽度的行保持不变
		{`"The only way to do great work is to love`, 10, `"The only way to do great work is to love`},
		{"exactly 10", 10, "exactly 10"},
		// 没有空白可扩展时只做右对齐
		{`""`, 10, `        ""`},
		{"Hi", 10, "        Hi"},
		// 单个空白段每轮加一个空格
		{"a b", 10, "a        b"},
		// 每轮最多扩展 width-len 个空白段
		{"a b c", 6, "a  b c"},
		{"a b c d", 12, "a   b   c  d"},
		{"", 4, "    "},
	}
	var j PadJustifier
	for _, c := range cases {
		if got := j.Justify(c.in, c.width); got != c.want {
			t.Fatalf("Justify(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestPadJustifierTrailingSpaceRun(t *testing.T) {
	got := PadJustifier{}.Justify("ab ", 6)
	if got != "ab    " {
		t.Fatalf("trailing run should absorb spaces, got %q", got)
	}
}

func TestPadJustifierIsNoopForWrappedLines(t *testing.T) {
	for _, line := range Wrap(strings.Repeat("lorem ipsum dolor ", 20), DefaultWrapWidth) {
		if got := (PadJustifier{}).Justify(line, DefaultJustifyWidth); len(line) >= DefaultJustifyWidth && got != line {
			t.Fatalf("line %q changed to %q", line, got)
		}
	}
}
