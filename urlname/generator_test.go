package urlname_test

import (
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/urlname"
)

func TestGenerateNormalizes(t *testing.T) {
	g := urlname.New()
	got := g.Generate("Week 1: Introduction & Overview!", 50)
	want := "week_1_introduction_overview"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateUniqueSuffixes(t *testing.T) {
	g := urlname.New()
	first := g.Generate("Module Title", 50)
	second := g.Generate("Module Title", 50)
	third := g.Generate("Module Title", 50)
	if first != "module_title" {
		t.Fatalf("first = %q", first)
	}
	if second != "module_title_1" {
		t.Errorf("second = %q, want module_title_1", second)
	}
	if third != "module_title_2" {
		t.Errorf("third = %q, want module_title_2", third)
	}
}

func TestGenerateMaxLength(t *testing.T) {
	g := urlname.New()
	long := strings.Repeat("abcde ", 30)
	for i := 0; i < 25; i++ {
		got := g.Generate(long, 20)
		if len(got) > 20 {
			t.Fatalf("iteration %d: len(%q) = %d, exceeds 20", i, got, len(got))
		}
	}
}

func TestGenerateManyCollisionsAtTinyMaxLength(t *testing.T) {
	g := urlname.New()
	seen := map[string]bool{}
	// Drive the counter suffix past one digit so it alone fills, then
	// exceeds, the length bound.
	for i := 0; i < 12; i++ {
		got := g.Generate("ab", 2)
		if got == "" {
			t.Fatalf("iteration %d: empty name", i)
		}
		if seen[got] {
			t.Fatalf("iteration %d: duplicate name %q", i, got)
		}
		seen[got] = true
	}
}

func TestGenerateDegenerateTitle(t *testing.T) {
	g := urlname.New()
	first := g.Generate("!!!", 50)
	second := g.Generate("???", 50)
	if first == second {
		t.Errorf("degenerate titles collided: %q", first)
	}
	if second != "_1" {
		t.Errorf("second degenerate = %q, want _1", second)
	}
}

func TestReset(t *testing.T) {
	g := urlname.New()
	first := g.Generate("Topic", 50)
	g.Reset()
	again := g.Generate("Topic", 50)
	if first != again {
		t.Errorf("after Reset() got %q, want %q", again, first)
	}
}
