// Package display drives the character LCD: a small Display interface over
// the hardware, plus a Renderer that lays out the dashboard and paginated
// text on it.
package display

// Display is a fixed-size character display addressed by column and row.
type Display interface {
	// Clear blanks the whole display and homes the cursor.
	Clear() error

	// MoveTo positions the cursor at col, row (both zero-based).
	MoveTo(col, row int) error

	// Write prints text from the cursor. Text past the end of the row is
	// dropped rather than wrapped.
	Write(text string) error
}
