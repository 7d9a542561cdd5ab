package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"embed:medium", "bolditalic", "embed:Bold-Italic", "REGULAR"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if len(data) < 4 {
			t.Fatalf("Load(%q) returned %d bytes", name, len(data))
		}
	}
	if _, err := Load("embed:Inter-Regular.ttf"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestDefaultsAreEmbedded(t *testing.T) {
	for _, src := range []string{QuoteSrc, AuthorSrc} {
		if !IsEmbedded(src) {
			t.Fatalf("%s should be an embed: source", src)
		}
		if _, err := Load(src); err != nil {
			t.Fatalf("default %s: %v", src, err)
		}
	}
	if IsEmbedded("fonts/InriaSerif-Light.ttf") {
		t.Fatalf("file path must not be treated as embedded")
	}
	if len(Names()) != 5 || Names()[0] != "bold" {
		t.Fatalf("unexpected names %v", Names())
	}
}

func TestEveryNameLoads(t *testing.T) {
	for _, name := range Names() {
		if _, err := Load(Prefix + name); err != nil {
			t.Fatalf("Load(%q) error: %v", Prefix+name, err)
		}
	}
	if _, err := Load("embed:light"); err == nil {
		t.Fatalf("light is not a built-in face")
	}
}
