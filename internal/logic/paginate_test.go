package logic

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func flatten(pages []Page) []string {
	var lines []string
	for _, p := range pages {
		lines = append(lines, p...)
	}
	return lines
}

func TestPaginateEmptyText(t *testing.T) {
	pages := Paginate("", 20, 3)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if len(pages[0]) != 1 || pages[0][0] != "" {
		t.Errorf("expected one empty line, got %q", pages[0])
	}
}

func TestPaginateShortText(t *testing.T) {
	pages := Paginate("Clear skies ahead", 20, 3)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if len(pages[0]) != 1 || pages[0][0] != "Clear skies ahead" {
		t.Errorf("unexpected page: %q", pages[0])
	}
}

func TestWrapExactFit(t *testing.T) {
	// "aaaaaaaaa bbbbbbbbbb" is exactly 20 characters
	lines := Wrap("aaaaaaaaa bbbbbbbbbb c", 20)
	want := []string{"aaaaaaaaa bbbbbbbbbb", "c"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWrapLongWordStaysWhole(t *testing.T) {
	word := strings.Repeat("x", 27)
	pages := Paginate(word, 20, 3)
	lines := flatten(pages)
	if len(lines) != 1 || lines[0] != word {
		t.Errorf("expected the word alone and unmodified, got %q", lines)
	}
}

func TestWrapLongWordBetweenShortWords(t *testing.T) {
	word := strings.Repeat("y", 25)
	lines := Wrap("hi "+word+" there", 20)
	want := []string{"hi", word, "there"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPaginateChunksIntoPages(t *testing.T) {
	// Each word fills a line on its own at width 5.
	text := "aaaa bbbb cccc dddd eeee ffff gggg"
	pages := Paginate(text, 5, 3)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if len(pages[0]) != 3 || len(pages[1]) != 3 || len(pages[2]) != 1 {
		t.Errorf("unexpected page sizes: %d, %d, %d", len(pages[0]), len(pages[1]), len(pages[2]))
	}
	if pages[2][0] != "gggg" {
		t.Errorf("last page: expected %q, got %q", "gggg", pages[2][0])
	}
}

func TestPaginateRoundTripAndWidth(t *testing.T) {
	texts := []string{
		"Mild and cloudy, light rain possible later this afternoon.",
		"Expect clear skies with a gentle breeze and rising humidity over the next three hours",
		"one",
		"a  double  spaced   text",
		"Supercalifragilisticexpialidocious weather incoming",
		"Température stable, humidité élevée",
	}
	for _, text := range texts {
		pages := Paginate(text, 20, 3)
		lines := flatten(pages)

		if got := strings.Join(lines, " "); got != text {
			t.Errorf("round trip: expected %q, got %q", text, got)
		}
		if strings.Join(strings.Fields(strings.Join(lines, " ")), " ") != strings.Join(strings.Fields(text), " ") {
			t.Errorf("word sequence changed for %q", text)
		}

		for _, line := range lines {
			n := utf8.RuneCountInString(line)
			if n > 20 && strings.Contains(line, " ") {
				t.Errorf("line %q exceeds width with more than one word", line)
			}
		}
		for i, p := range pages {
			if len(p) == 0 || len(p) > 3 {
				t.Errorf("page %d of %q has %d lines", i, text, len(p))
			}
		}
	}
}

func TestPaginateIsDeterministic(t *testing.T) {
	text := "Warm afternoon, clouds building toward evening"
	a := Paginate(text, 20, 3)
	b := Paginate(text, 20, 3)
	if len(a) != len(b) {
		t.Fatalf("page counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if strings.Join(a[i], "|") != strings.Join(b[i], "|") {
			t.Errorf("page %d differs", i)
		}
	}
}
