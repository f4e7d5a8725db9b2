package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sweeney/weather-station/internal/logic"
)

// Renderer lays out station screens on a Display. Display failures are
// logged and skipped; a render never returns an error.
type Renderer struct {
	d      Display
	cols   int
	rows   int
	sleep  func(time.Duration)
	logger log.Logger
}

// NewRenderer creates a Renderer for a cols x rows display.
// A nil sleep uses time.Sleep.
func NewRenderer(d Display, cols, rows int, sleep func(time.Duration), logger log.Logger) *Renderer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Renderer{
		d:      d,
		cols:   cols,
		rows:   rows,
		sleep:  sleep,
		logger: logger,
	}
}

// Cols returns the display width in characters.
func (r *Renderer) Cols() int { return r.cols }

// Rows returns the number of display rows.
func (r *Renderer) Rows() int { return r.rows }

// Clear blanks the display.
func (r *Renderer) Clear() {
	if err := r.d.Clear(); err != nil {
		r.fail("clear", err)
	}
}

// Text writes text at the start of row without touching the rest of it.
func (r *Renderer) Text(row int, text string) {
	if err := r.d.MoveTo(0, row); err != nil {
		r.fail("move", err)
		return
	}
	if err := r.d.Write(text); err != nil {
		r.fail("write", err)
	}
}

// Line writes text on row padded with spaces to the full width, overwriting
// whatever was there before.
func (r *Renderer) Line(row int, text string) {
	r.Text(row, pad(text, r.cols))
}

// Dashboard shows the live readings in place.
func (r *Renderer) Dashboard(rd logic.Reading) {
	lines := []string{
		fmt.Sprintf("Temp: %.1fC/%.1fF", rd.Temperature, rd.Fahrenheit()),
		fmt.Sprintf("Humidity: %.1f%%", rd.Humidity),
		fmt.Sprintf("Light: %d", rd.Light),
		"Press button for AI",
	}
	for i, l := range lines {
		if i >= r.rows {
			break
		}
		r.Line(i, l)
	}
}

// Message wraps text into pages fitting rows startRow and below, then shows
// them with Pages.
func (r *Renderer) Message(text string, startRow int, dwell time.Duration) {
	rows := r.rows - startRow
	if rows < 1 {
		rows = 1
	}
	r.Pages(logic.Paginate(text, r.cols, rows), startRow, dwell)
}

// Pages shows each page on rows startRow and below. The usable rows are
// blanked before every page. With more than one page it waits dwell after
// each one; a single page returns immediately.
func (r *Renderer) Pages(pages []logic.Page, startRow int, dwell time.Duration) {
	blank := strings.Repeat(" ", r.cols)
	for _, page := range pages {
		for row := startRow; row < r.rows; row++ {
			r.Text(row, blank)
		}
		for i, line := range page {
			if startRow+i >= r.rows {
				break
			}
			r.Text(startRow+i, line)
		}
		if len(pages) > 1 {
			r.sleep(dwell)
		}
	}
}

func (r *Renderer) fail(op string, err error) {
	level.Warn(r.logger).Log("msg", "display "+op+" failed", "err", err)
}

// pad returns s padded with spaces (or cut) to exactly n runes.
func pad(s string, n int) string {
	rs := []rune(s)
	if len(rs) >= n {
		return string(rs[:n])
	}
	return s + strings.Repeat(" ", n-len(rs))
}
