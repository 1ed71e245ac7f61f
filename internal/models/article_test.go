package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMakeExcerptStripsMarkup(t *testing.T) {
	got := MakeExcerpt("<h1>Title</h1><p>Some   body &amp; text</p>")
	if strings.ContainsAny(got, "<>") {
		t.Errorf("markup survived: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestMakeExcerptShortContentUnchanged(t *testing.T) {
	if got := MakeExcerpt("A short note."); got != "A short note." {
		t.Errorf("got %q", got)
	}
}

func TestMakeExcerptCutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("bismillah ", 40)
	got := MakeExcerpt(long)

	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if utf8.RuneCountInString(got) > excerptLen+1 {
		t.Errorf("excerpt too long: %d runes", utf8.RuneCountInString(got))
	}
	// never cut mid-word
	trimmed := strings.TrimSuffix(got, "…")
	for _, w := range strings.Fields(trimmed) {
		if w != "bismillah" {
			t.Errorf("word was split: %q", w)
		}
	}
}
