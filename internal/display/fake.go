package display

import (
	"strings"
	"sync"
)

// Fake is an in-memory Display for tests. It keeps the visible character
// grid and counts clears.
type Fake struct {
	mu   sync.Mutex
	grid [][]rune
	col  int
	row  int

	// Clears counts calls to Clear.
	Clears int

	// Frames holds a copy of the grid taken at every Clear, so tests can see
	// what was on screen before it was wiped.
	Frames [][]string

	// WriteError, if set, is returned by every call.
	WriteError error
}

// NewFake creates a blank cols x rows display.
func NewFake(cols, rows int) *Fake {
	f := &Fake{grid: make([][]rune, rows)}
	for i := range f.grid {
		f.grid[i] = []rune(strings.Repeat(" ", cols))
	}
	return f
}

// Clear blanks the grid.
func (f *Fake) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Frames = append(f.Frames, f.linesLocked())
	for _, row := range f.grid {
		for i := range row {
			row[i] = ' '
		}
	}
	f.col, f.row = 0, 0
	f.Clears++
	return nil
}

// MoveTo positions the cursor.
func (f *Fake) MoveTo(col, row int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	f.col, f.row = col, row
	return nil
}

// Write puts text on the grid from the cursor, dropping what overflows.
func (f *Fake) Write(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	if f.row < 0 || f.row >= len(f.grid) {
		return nil
	}
	line := f.grid[f.row]
	for _, r := range text {
		if f.col >= len(line) {
			break
		}
		line[f.col] = r
		f.col++
	}
	return nil
}

// Line returns row with trailing spaces removed.
func (f *Fake) Line(row int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimRight(string(f.grid[row]), " ")
}

// Lines returns every row with trailing spaces removed.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.linesLocked()
}

func (f *Fake) linesLocked() []string {
	out := make([]string, len(f.grid))
	for i, row := range f.grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}
