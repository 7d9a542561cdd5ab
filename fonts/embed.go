package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Prefix marks a font source that refers to a built-in face.
const Prefix = "embed:"

var builtin = map[string][]byte{
	"regular":    goregular.TTF,
	"medium":     gomedium.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
}

// Default sources for the quote and author faces.
const (
	QuoteSrc  = Prefix + "regular"
	AuthorSrc = Prefix + "bolditalic"
)

// IsEmbedded reports whether src names a built-in font.
func IsEmbedded(src string) bool { return strings.HasPrefix(src, Prefix) }

// Load 返回内置字体的字节数据，name 可写为 "embed:bolditalic" 或直接 "bolditalic"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, Prefix))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可选 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names lists the built-in font names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
