package floodrush

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/floodrush/internal/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
)

const (
	cellW        = 3 // Terminal columns per field cell
	hudHeight    = 2
	footerHeight = 2
	panelW       = 14 // Queue preview panel
	previewLen   = 5
)

// boardSize returns the size of the boxed field in terminal cells.
func (g *Game) boardSize() (w, h int) {
	dims := g.level.Dimensions()
	return dims.Width*cellW + 2, dims.Height + 2
}

func (g *Game) tooSmall() bool {
	if g.level == nil {
		return false
	}
	w, h := g.boardSize()
	return g.cfg.ScreenW < w+panelW+1 || g.cfg.ScreenH < h+hudHeight+footerHeight
}

// Glyph returns the three-column drawing of a piece.
func Glyph(p *core.PipeSection) string {
	if p.Type() == core.CrossSection {
		return "═╬═"
	}
	var sides [4]bool
	sides[p.EntryPoint()] = true
	sides[p.ExitPoint()] = true

	left, right := " ", " "
	if sides[core.West] {
		left = "═"
	}
	if sides[core.East] {
		right = "═"
	}

	var mid string
	switch {
	case sides[core.North] && sides[core.South]:
		mid = "║"
	case sides[core.West] && sides[core.East]:
		mid = "═"
	case sides[core.North] && sides[core.East]:
		mid = "╚"
	case sides[core.North] && sides[core.West]:
		mid = "╝"
	case sides[core.South] && sides[core.East]:
		mid = "╔"
	default:
		mid = "╗"
	}
	return left + mid + right
}

func pieceColor(p *core.PipeSection) platformcore.Color {
	switch p.State() {
	case core.Connected:
		return platformcore.ColorBrightBlue
	case core.Flowing:
		return platformcore.ColorBrightCyan
	case core.Full:
		if p.CanAcceptFlow() {
			return platformcore.ColorCyan
		}
		return platformcore.ColorBlue
	default:
		return platformcore.ColorWhite
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.level == nil {
		msg := "No level loaded"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Cannot start", msg)
		return
	}

	g.renderHUD(dst)

	if g.tooSmall() {
		w, h := g.boardSize()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need at least %dx%d", w+panelW+1, h+hudHeight+footerHeight))
		return
	}

	bw, bh := g.boardSize()
	play := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	layout := play.Center(bw+panelW, bh)
	board := platformcore.NewRect(layout.X, layout.Y, bw, bh)
	g.renderBoard(dst, board)
	g.renderQueue(dst, board.Right()+1, board.Y)
	g.renderFooter(dst)

	switch {
	case g.allCleared:
		g.renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Run score: %d", g.runScore))
	case g.finished && g.result.Won:
		next := "Enter: next level"
		if g.result.Next == 0 {
			next = "Enter: finish"
		}
		g.renderOverlay(dst, fmt.Sprintf("Level %d complete: %d points", g.levelNumber, g.result.Points), next)
	case g.finished:
		title := "Leak!"
		if g.result.Reason == core.TimedOut {
			title = "Time's up!"
		}
		g.renderOverlay(dst, title, "Enter/R: try again")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func formatClock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// renderHUD draws the status bar and the separator below it.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	parts := []string{
		" FloodRush",
		fmt.Sprintf("Level %d: %s", g.level.Number(), g.level.Name()),
		fmt.Sprintf("Score: %d", g.level.Points()),
		fmt.Sprintf("Top: %d", max(g.topScore, g.level.Points())),
		formatClock(g.flow.Elapsed()),
	}
	if left, ok := g.flow.TimeLeft(); ok {
		parts = append(parts, "Left: "+formatClock(left))
	}
	dst.DrawTextWithColor(0, 0, strings.Join(parts, " | "), platformcore.ColorCyan)

	if !g.flow.Started() {
		countdown := fmt.Sprintf("Water in %ds ", int(g.flow.StartsIn().Seconds()+0.999))
		dst.DrawTextWithColor(dst.Width()-utf8.RuneCountInString(countdown), 0, countdown, platformcore.ColorBrightYellow)
	} else if g.flow.FastForwarding() {
		dst.DrawTextWithColor(dst.Width()-4, 0, ">> ", platformcore.ColorBrightYellow)
	}

	dst.DrawHLine(0, hudHeight-1, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoard draws the boxed field and the cursor.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect) {
	dst.DrawBoxColor(board, platformcore.ColorGray)
	inner := board.Inset(1)

	dims := g.level.Dimensions()
	next, _ := g.queue.Peek()
	for cy := 0; cy < dims.Height; cy++ {
		for cx := 0; cx < dims.Width; cx++ {
			p := core.P(cx, cy)
			sx, sy := inner.X+cx*cellW, inner.Y+cy
			text, color := g.cellView(p)

			if p == g.cursor && !g.finished {
				color = platformcore.ColorBrightYellow
				if g.field.At(p) == nil && next != nil && !g.field.IsStart(p) && !g.field.IsEnd(p) {
					text = Glyph(next)
				}
				if text == " · " {
					text = "[ ]"
				}
			}
			dst.DrawTextWithColor(sx, sy, text, color)
		}
	}
}

// cellView returns the text and color of one field cell.
func (g *Game) cellView(p core.Position) (string, platformcore.Color) {
	switch {
	case g.field.IsStart(p):
		return "[S]", platformcore.ColorBrightGreen
	case g.field.IsEnd(p):
		if g.finished && g.result.Won {
			return "[E]", platformcore.ColorBrightCyan
		}
		return "[E]", platformcore.ColorBrightRed
	}
	piece := g.field.At(p)
	if piece == nil {
		if _, pos, _ := g.flow.Current(); g.finished && !g.result.Won && pos == p {
			return " ~ ", platformcore.ColorBrightRed
		}
		return " · ", platformcore.ColorGray
	}
	return Glyph(piece), pieceColor(piece)
}

// renderQueue draws the upcoming pieces, head first.
func (g *Game) renderQueue(dst *platformcore.Screen, x, y int) {
	dst.DrawTextWithColor(x, y, "Next", platformcore.ColorGray)
	pieces := g.queue.Pieces()
	for i := 0; i < previewLen && i < len(pieces); i++ {
		p := pieces[i]
		color := platformcore.ColorGray
		if i == 0 {
			color = platformcore.ColorBrightYellow
		}
		row := y + 1 + i*2
		dst.DrawTextWithColor(x, row, Glyph(p), color)
		pts := fmt.Sprintf("%d", p.Points())
		if sp, ok := p.SecondaryPoints(); ok {
			pts += fmt.Sprintf("/%d", sp)
		}
		dst.DrawTextWithColor(x+4, row, pts, color)
	}
}

// renderFooter draws the message line and the controls hint.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	h := dst.Height()
	if g.message != "" {
		dst.DrawTextWithColor(1, h-2, g.message, platformcore.ColorYellow)
	}
	controls := " ←↑↓→: Move | Space: Place | X: Discard | F: Flood | R: Restart | P: Pause"
	dst.DrawTextWithColor(0, h-1, controls, platformcore.ColorGray)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	box := dst.Bounds().Center(maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}
