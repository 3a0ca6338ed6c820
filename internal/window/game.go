// Package window runs a session in a desktop window.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/object"
)

// Screen is the phase the window is showing.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenPlaying
	ScreenOver
)

// moveRepeatTicks is how often a held arrow key repeats the move.
const moveRepeatTicks = 6

var (
	colorBackground = color.RGBA{R: 8, G: 10, B: 28, A: 255}
	colorPlayer     = color.RGBA{R: 80, G: 220, B: 255, A: 255}
	colorProjectile = color.RGBA{R: 255, G: 230, B: 90, A: 255}
	colorRegular    = color.RGBA{R: 230, G: 80, B: 80, A: 255}
	colorFast       = color.RGBA{R: 250, G: 150, B: 40, A: 255}
	colorStrong     = color.RGBA{R: 160, G: 90, B: 230, A: 255}
	colorHeart      = color.RGBA{R: 240, G: 60, B: 90, A: 255}
	colorHitbox     = color.RGBA{R: 60, G: 255, B: 120, A: 255}
	colorText       = color.White
)

// ErrQuit is returned from Update when the player closes the game.
var ErrQuit = ebiten.Termination

// Game implements ebiten.Game around one local session.
type Game struct {
	tuning  config.Tuning
	keys    Keys
	rng     *rand.Rand
	face    font.Face
	logger  *log.Logger
	session *loop.Session
	spawner *object.EnemySpawner
	snap    loop.Snapshot

	screen       Screen
	heldTicks    int  // Ticks the current move key has been held
	overTicks    int  // Ticks since Game-Over
	showHitboxes bool // F1 debug overlay
	best         int
}

// NewGame creates a window game. A nil logger uses the default logger.
func NewGame(tuning config.Tuning, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	if err := tuning.Validate(); err != nil {
		logger.Warn("tuning adjusted", "err", err)
	}
	return &Game{
		tuning: tuning,
		keys:   ebitenKeys{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		face:   basicfont.Face7x13,
		logger: logger,
	}
}

// Update advances the game by one tick.
func (g *Game) Update() error {
	if anyJustPressed(g.keys, ebiten.KeyEscape, ebiten.KeyQ) {
		return ErrQuit
	}
	if g.keys.JustPressed(ebiten.KeyF1) {
		g.showHitboxes = !g.showHitboxes
	}

	switch g.screen {
	case ScreenTitle:
		if anyJustPressed(g.keys, ebiten.KeyEnter, ebiten.KeySpace) {
			return g.start()
		}
	case ScreenPlaying:
		return g.updatePlaying()
	case ScreenOver:
		g.overTicks++
		restartAfter := int(config.RestartDelaySeconds * float64(g.tuning.TickRate))
		if g.overTicks >= restartAfter && g.keys.JustPressed(ebiten.KeyEnter) {
			return g.start()
		}
	}
	return nil
}

// start begins a fresh session.
func (g *Game) start() error {
	s, err := loop.NewSession(g.tuning, g.tuning.Player.StartX, g.tuning.Player.StartY)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.session = s
	g.spawner = object.NewEnemySpawner(g.rng, g.tuning.SpawnRules()...)
	g.snap = s.LastSnapshot()
	g.screen = ScreenPlaying
	g.heldTicks = 0
	g.overTicks = 0
	return nil
}

func (g *Game) updatePlaying() error {
	for _, cmd := range g.commands() {
		if err := g.session.HandleInput(cmd); err != nil && !errors.Is(err, loop.ErrInvalidState) {
			return err
		}
	}

	for _, kind := range g.spawner.Advance(g.tuning.TickDuration()) {
		if err := g.session.SpawnEnemyKind(kind, g.spawner.RandomX(g.session.Field().Width)); err != nil {
			return err
		}
	}

	g.snap = g.session.Tick()
	if g.snap.GameOver {
		g.screen = ScreenOver
		g.best = max(g.best, g.snap.Score)
		g.logger.Info("game over", "score", g.snap.Score, "ticks", g.snap.Tick)
	}
	return nil
}

// commands maps this frame's key state to session commands. A held arrow
// key repeats every moveRepeatTicks.
func (g *Game) commands() []input.Command {
	var cmds []input.Command

	left := anyPressed(g.keys, ebiten.KeyArrowLeft, ebiten.KeyA)
	right := anyPressed(g.keys, ebiten.KeyArrowRight, ebiten.KeyD)
	if left != right {
		if g.heldTicks%moveRepeatTicks == 0 {
			if left {
				cmds = append(cmds, input.CommandMoveLeft)
			} else {
				cmds = append(cmds, input.CommandMoveRight)
			}
		}
		g.heldTicks++
	} else {
		g.heldTicks = 0
	}

	if g.keys.JustPressed(ebiten.KeySpace) {
		cmds = append(cmds, input.CommandFire)
	}
	return cmds
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if g.screen == ScreenTitle {
		g.drawCentered(screen, "SKYSHOT", -30)
		g.drawCentered(screen, "arrows move, space shoots, F1 hitboxes", 0)
		g.drawCentered(screen, "press ENTER to start", 30)
		return
	}

	g.drawWorld(screen)
	g.drawHUD(screen)

	if g.screen == ScreenOver {
		g.drawCentered(screen, "GAME OVER", -20)
		g.drawCentered(screen, fmt.Sprintf("score %d   best %d", g.snap.Score, g.best), 0)
		g.drawCentered(screen, "press ENTER to play again", 30)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	s := g.snap

	fillBox(screen, s.Player.X, s.Player.Y, s.Player.Size, colorPlayer)
	for _, p := range s.Projectiles {
		fillBox(screen, p.X, p.Y, s.ProjectileSize, colorProjectile)
	}
	for _, e := range s.Enemies {
		fillBox(screen, e.X, e.Y, e.Size, enemyColor(e.Kind))
	}
	for _, ex := range s.Explosions {
		clr := colorProjectile
		if ex.Hit {
			clr = colorHeart
		}
		vector.DrawFilledCircle(screen, float32(ex.X), float32(ex.Y), float32(30*ex.Fade), clr, true)
	}

	if g.showHitboxes {
		strokeBox(screen, s.Player.X, s.Player.Y, s.Player.Size)
		for _, p := range s.Projectiles {
			strokeBox(screen, p.X, p.Y, s.ProjectileSize)
		}
		for _, e := range s.Enemies {
			strokeBox(screen, e.X, e.Y, e.Size)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	text.Draw(screen, fmt.Sprintf("SCORE %d", g.snap.Score), g.face, 10, 20, colorText)

	// One heart per life, right-aligned
	const heart, gap = 14, 6
	for i := 0; i < g.snap.Player.Life; i++ {
		x := g.snap.Field.Width - float64((i+1)*(heart+gap))
		vector.DrawFilledRect(screen, float32(x), 10, heart, heart, colorHeart, false)
	}
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, dy int) {
	b := text.BoundString(g.face, s)
	w, h := g.Layout(0, 0)
	text.Draw(screen, s, g.face, (w-b.Dx())/2, h/2+dy, colorText)
}

// Layout implements ebiten.Game; the logical screen is the playfield.
func (g *Game) Layout(int, int) (int, int) {
	return int(g.tuning.Playfield.Width), int(g.tuning.Playfield.Height)
}

// Screen returns the phase being shown.
func (g *Game) Screen() Screen {
	return g.screen
}

// Snapshot returns the last snapshot drawn.
func (g *Game) Snapshot() loop.Snapshot {
	return g.snap
}

func enemyColor(kind object.EnemyKind) color.Color {
	switch kind {
	case object.EnemyFast:
		return colorFast
	case object.EnemyStrong:
		return colorStrong
	default:
		return colorRegular
	}
}

func fillBox(screen *ebiten.Image, x, y float64, ext object.Extents, clr color.Color) {
	vector.DrawFilledRect(screen,
		float32(x-ext.HalfW), float32(y-ext.HalfH),
		float32(2*ext.HalfW), float32(2*ext.HalfH), clr, false)
}

func strokeBox(screen *ebiten.Image, x, y float64, ext object.Extents) {
	vector.StrokeRect(screen,
		float32(x-ext.HalfW), float32(y-ext.HalfH),
		float32(2*ext.HalfW), float32(2*ext.HalfH), 1, colorHitbox, false)
	vector.DrawFilledRect(screen, float32(x-1), float32(y-1), 2, 2, colorHitbox, false)
}
