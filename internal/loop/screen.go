package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/object"
)

// ASCII art title (figlet "small" font)
var titleArt = []string{
	`   ___ ___   ___  _  _____ ___   ___ _   _ _  _  `,
	`  / __/ _ \ / _ \| |/ /_ _| __| | _ \ | | | \| | `,
	` | (_| (_) | (_) | ' < | || _|  |   / |_| | .' | `,
	`  \___\___/ \___/|_|\_\___|___| |_|_\\___/|_|\_| `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawUI draws the text overlay for the current screen.
func (t *Terminal) drawUI(ctx object.DrawContext, f Frame) {
	termWidth := t.canvas.TerminalWidth()
	termHeight := t.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if f.View.Shutdown {
		drawShutdownScreen(ctx, centerX, centerY, f.View.ShutdownLeft)
		return
	}
	if f.View.Inactive {
		drawInactivityScreen(ctx, centerX, centerY, f.View.InactiveLeft)
		return
	}

	snap := f.Snapshot
	switch snap.Phase {
	case engine.PhaseIdle:
		if f.View.ShowRecords {
			drawRecordsScreen(ctx, centerX, centerY, snap.Best)
		} else {
			t.drawMenuScreen(ctx, centerX, centerY, snap.Best)
		}
	case engine.PhaseRunning:
		drawHUD(ctx, termWidth, snap)
	case engine.PhasePaused:
		drawHUD(ctx, termWidth, snap)
		drawPausedOverlay(ctx, centerX, centerY)
	case engine.PhaseGameOver:
		drawHUD(ctx, termWidth, snap)
		drawGameOverScreen(ctx, centerX, centerY, snap)
	}
}

func writeCentered(ctx object.DrawContext, centerX, y int, s, style string) {
	object.Centered(centerX, y, s, style).Draw(ctx)
}

func writeArt(ctx object.DrawContext, centerX, y int, art []string, style string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		object.Text{X: centerX - width/2, Y: y + i, Value: line, Style: style}.Draw(ctx)
	}
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawMenuScreen draws the title screen.
func (t *Terminal) drawMenuScreen(ctx object.DrawContext, centerX, centerY, best int) {
	startY := centerY - 9
	writeArt(ctx, centerX, startY, titleArt, draw.ColorYellow)

	subtitle := "~ catch the cookies, dodge the rocks ~"
	if t.title != "" {
		subtitle = t.title
	}
	writeCentered(ctx, centerX, startY+len(titleArt)+1, subtitle, draw.ColorDim)

	if best > 0 {
		writeCentered(ctx, centerX, startY+len(titleArt)+3, fmt.Sprintf("Best: %d", best), draw.ColorBrightGreen)
	}

	controlsY := startY + len(titleArt) + 5
	writeCentered(ctx, centerX, controlsY, "Controls", draw.ColorBold)
	controlLines := []string{
		"Mouse . . . . . . . . .  Move",
		"A D / < >  . . . . . . . Move",
		"P / Esc  . . . . . . .  Pause",
		"M  . . . . . . . . . . . Menu",
		"R  . . . . . . . . .  Records",
		"Q  . . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		writeCentered(ctx, centerX, controlsY+1+i, line, "")
	}

	legendY := controlsY + len(controlLines) + 2
	legend := fmt.Sprintf("%s●%s cookie +1   %s◆%s rock -1 life   %sU%s magnet   %s♥%s extra life",
		draw.ColorYellow, draw.ColorReset, draw.ColorRed, draw.ColorReset,
		draw.ColorBrightCyan, draw.ColorReset, draw.ColorMagenta, draw.ColorReset)
	writeCentered(ctx, centerX, legendY, legend, "")

	if blinkOn() {
		writeCentered(ctx, centerX, legendY+2, ">>  Press SPACE to Start  <<", draw.ColorBold)
	}
}

// drawRecordsScreen shows the persisted best score.
func drawRecordsScreen(ctx object.DrawContext, centerX, centerY, best int) {
	writeCentered(ctx, centerX, centerY-3, "R E C O R D S", draw.ColorBold)
	if best > 0 {
		writeCentered(ctx, centerX, centerY-1, fmt.Sprintf("Best score: %d", best), draw.ColorBrightGreen)
	} else {
		writeCentered(ctx, centerX, centerY-1, "No record yet. Go set one!", draw.ColorDim)
	}
	writeCentered(ctx, centerX, centerY+2, "Press R or Esc to go back", "")
}

// drawHUD draws score, best, hearts and the magnet indicator.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func drawHUD(ctx object.DrawContext, termWidth int, snap engine.Snapshot) {
	object.Text{X: 2, Y: 1, Value: fmt.Sprintf("Score: %-6d", snap.Score), Style: draw.ColorBold}.Draw(ctx)
	object.Text{X: 2, Y: 2, Value: fmt.Sprintf("Best:  %-6d", snap.Best), Style: draw.ColorDim}.Draw(ctx)

	hearts := Hearts(snap.Lives, snap.MaxLives)
	object.Text{X: termWidth - snap.MaxLives - 1, Y: 1, Value: hearts, Style: draw.ColorBrightRed}.Draw(ctx)

	magnet := strings.Repeat(" ", 11)
	if snap.Player.HasMagnet {
		magnet = fmt.Sprintf("MAGNET %3.0fs", snap.Magnet.Seconds())
	}
	object.Text{X: termWidth - len(magnet) - 1, Y: 2, Value: magnet, Style: draw.ColorBrightCyan}.Draw(ctx)
}

// Hearts renders filled hearts for lives and hollow ones up to max.
func Hearts(lives, maxLives int) string {
	lives = max(0, min(lives, maxLives))
	return strings.Repeat("♥", lives) + strings.Repeat("♡", maxLives-lives)
}

func drawPausedOverlay(ctx object.DrawContext, centerX, centerY int) {
	writeCentered(ctx, centerX, centerY-1, "P A U S E D", draw.ColorBold)
	writeCentered(ctx, centerX, centerY+1, "Press P to resume, M for menu", "")
}

// drawGameOverScreen draws the final score and the new record banner.
func drawGameOverScreen(ctx object.DrawContext, centerX, centerY int, snap engine.Snapshot) {
	startY := centerY - 7
	writeArt(ctx, centerX, startY, gameOverArt, draw.ColorRed)

	y := startY + len(gameOverArt) + 1
	writeCentered(ctx, centerX, y, fmt.Sprintf("Final score: %d", snap.Score), draw.ColorBold)
	if snap.NewRecord {
		writeCentered(ctx, centerX, y+2, "*** NEW RECORD! ***", draw.ColorYellow+draw.ColorBold)
	} else {
		writeCentered(ctx, centerX, y+2, fmt.Sprintf("Best: %d", snap.Best), draw.ColorDim)
	}

	if blinkOn() {
		writeCentered(ctx, centerX, y+4, ">>  Press SPACE to Play Again  <<", "")
	}
	writeCentered(ctx, centerX, y+5, "M for menu, Q to quit", draw.ColorDim)
}

// drawInactivityScreen draws the inactivity warning screen.
func drawInactivityScreen(ctx object.DrawContext, centerX, centerY int, left time.Duration) {
	writeCentered(ctx, centerX, centerY-2, "INACTIVITY WARNING", draw.ColorBold)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds()))
	writeCentered(ctx, centerX, centerY, msg, "")
	writeCentered(ctx, centerX, centerY+2, "Press any key to continue", "")
}

// drawShutdownScreen draws the server shutdown notification screen.
func drawShutdownScreen(ctx object.DrawContext, centerX, centerY int, left time.Duration) {
	writeCentered(ctx, centerX, centerY-3, "SERVER SHUTTING DOWN", draw.ColorBold)
	writeCentered(ctx, centerX, centerY-1, "The server is restarting for maintenance.", "")
	writeCentered(ctx, centerX, centerY, "Please reconnect in a moment.", "")
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", int(left.Seconds())+1)
	writeCentered(ctx, centerX, centerY+2, countdown, "")
	writeCentered(ctx, centerX, centerY+4, "Press Q to disconnect now", draw.ColorDim)
}
