package core

// Color is a foreground color for a screen cell. The platform decides
// how each value looks on a terminal.
type Color uint8

const (
	ColorDefault Color = iota

	// Chrome: frames, labels, hints.
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightYellow

	// Water and pipes.
	ColorBlue
	ColorBrightBlue
	ColorCyan
	ColorBrightCyan

	// Start tile and failures.
	ColorBrightGreen
	ColorBrightRed
)
