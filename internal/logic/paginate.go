package logic

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text on single spaces and greedily packs the words into lines
// of at most width characters. A word longer than width is placed on its own
// line unmodified. Joining the returned lines with a single space gives back
// text exactly.
func Wrap(text string, width int) []string {
	words := strings.Split(text, " ")

	var lines []string
	var cur []string
	curLen := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if len(cur) > 0 && curLen+1+wl > width {
			lines = append(lines, strings.Join(cur, " "))
			cur = cur[:0]
			curLen = 0
		}
		if len(cur) > 0 {
			curLen++
		}
		cur = append(cur, w)
		curLen += wl
	}
	return append(lines, strings.Join(cur, " "))
}

// Paginate wraps text to width and chunks the lines into pages of rows lines.
// The last page may be partial. Empty text yields one page with one empty line.
func Paginate(text string, width, rows int) []Page {
	if rows < 1 {
		rows = 1
	}
	lines := Wrap(text, width)

	pages := make([]Page, 0, (len(lines)+rows-1)/rows)
	for start := 0; start < len(lines); start += rows {
		end := start + rows
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page(lines[start:end:end]))
	}
	return pages
}
