package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/skyshot/internal/draw"
	"github.com/tomz197/skyshot/internal/loop"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// Full clear on screen or inactivity transitions so old UI text goes away
	if c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snap := c.state.Snapshot
	showWorld := snap != nil && !c.state.isInactive &&
		(c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver)
	if showWorld {
		c.drawWorld(snap)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if showWorld {
		c.drawExplosions(snap)
	}
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawWorld draws the player, projectiles and enemies onto the canvas.
func (c *Client) drawWorld(snap *loop.Snapshot) {
	p := snap.Player
	ship := c.canvas.BorrowPoints(3)
	ship[0] = draw.Point{X: p.X, Y: p.Y - p.Size.HalfH}
	ship[1] = draw.Point{X: p.X - p.Size.HalfW, Y: p.Y + p.Size.HalfH}
	ship[2] = draw.Point{X: p.X + p.Size.HalfW, Y: p.Y + p.Size.HalfH}
	c.canvas.DrawPolygon(ship, true)

	for _, pr := range snap.Projectiles {
		c.canvas.FillRect(pr.X, pr.Y, snap.ProjectileSize.HalfW, snap.ProjectileSize.HalfH)
	}

	for _, e := range snap.Enemies {
		switch e.Kind {
		case object.EnemyStrong:
			// Armored: double outline
			c.canvas.StrokeRect(e.X, e.Y, e.Size.HalfW, e.Size.HalfH)
			c.canvas.StrokeRect(e.X, e.Y, e.Size.HalfW*0.6, e.Size.HalfH*0.6)
		case object.EnemyFast:
			diamond := c.canvas.BorrowPoints(4)
			diamond[0] = draw.Point{X: e.X, Y: e.Y - e.Size.HalfH}
			diamond[1] = draw.Point{X: e.X + e.Size.HalfW, Y: e.Y}
			diamond[2] = draw.Point{X: e.X, Y: e.Y + e.Size.HalfH}
			diamond[3] = draw.Point{X: e.X - e.Size.HalfW, Y: e.Y}
			c.canvas.DrawPolygon(diamond, true)
		default:
			c.canvas.FillRect(e.X, e.Y, e.Size.HalfW, e.Size.HalfH)
		}
	}
}

// drawExplosions overlays fading explosion glyphs as text.
func (c *Client) drawExplosions(snap *loop.Snapshot) {
	for _, ex := range snap.Explosions {
		col, row := c.canvas.LogicalToTerminal(ex.X, ex.Y)
		if col < 1 || row < 1 || col > c.canvas.TerminalWidth() || row > c.canvas.TerminalHeight() {
			continue
		}
		glyph := string(draw.ShadeLevel(ex.Fade))
		if ex.Hit {
			glyph = draw.ColorRed + glyph + draw.ColorReset
		}
		c.chunkWriter.WriteAt(col, row, glyph)
		c.canvas.MarkTextDirty(col, row, 1)
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(snap *loop.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		if snap != nil {
			c.drawPlayingHUD(termWidth, termHeight, snap)
		}
	case GameStateOver:
		c.drawGameOverScreen(centerX, centerY, snap)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

var titleArt = []string{
	` ___ _  ____   _____ _  _  ___ _____ `,
	`/ __| |/ /\ \ / / __| || |/ _ \_   _|`,
	`\__ \ ' <  \ V /\__ \ __ | (_) || |  `,
	`|___/_|\_\  |_| |___/_||_|\___/ |_|  `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// writeArt writes lines centered on centerX starting at row y and returns
// the row below the art.
func (c *Client) writeArt(centerX, y int, art []string) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, y+i, line)
	}
	return y + len(art)
}

func (c *Client) writeCentered(centerX, y int, s string) {
	c.chunkWriter.WriteAt(centerX-len(s)/2, y, s)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	y := c.writeArt(centerX, centerY-8, titleArt)

	c.writeCentered(centerX, y+1, "~ Hold the line against the descending swarm ~")

	controlsY := y + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"A / <  . . . . Move left",
		"D / >  . . .  Move right",
		"SPACE  . . . . . . Shoot",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, ">>  Press ENTER to Start  <<")
	}
}

// drawPlayingHUD draws score, hearts and counters around the playfield.
// Fields are fixed-width so shrinking values leave no residue.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *loop.Snapshot) {
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-8d", snap.Score)
	cw.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	hearts := strings.Repeat(string(draw.Heart), snap.Player.Life)
	pad := strings.Repeat(" ", max(0, config.InitialLives-snap.Player.Life))
	livesCol := termWidth - max(config.InitialLives, snap.Player.Life) - 1
	cw.WriteAt(livesCol, 1, draw.ColorRed+hearts+draw.ColorReset+pad)
	c.canvas.MarkTextDirty(livesCol, 1, len(hearts)+len(pad))

	killsText := fmt.Sprintf("Kills: %-5d", snap.Stats.EnemiesDestroyed)
	cw.WriteAt(2, termHeight, killsText)
	c.canvas.MarkTextDirty(2, termHeight, len(killsText))
}

// drawGameOverScreen draws the final score, session stats and the leaderboard.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap *loop.Snapshot) {
	y := c.writeArt(centerX, centerY-8, gameOverArt)

	c.writeCentered(centerX, y+1, fmt.Sprintf("Score: %d", c.state.FinalScore))
	if snap != nil {
		st := snap.Stats
		c.writeCentered(centerX, y+2, fmt.Sprintf("Shots %d  Kills %d  Escaped %d", st.ShotsFired, st.EnemiesDestroyed, st.EnemiesEscaped))
	}

	top := c.server.TopScores()
	row := y + 4
	if len(top) > 0 {
		c.writeCentered(centerX, row, "Top Scores")
		for i, e := range top {
			c.writeCentered(centerX, row+1+i, fmt.Sprintf("%d. %-12s %6d", i+1, e.Username, e.Score))
		}
		row += len(top) + 2
	}

	if c.state.restartTimer <= 0 && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row+1, ">>  Press ENTER to Restart  <<")
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
