// Package tron implements Light Bike, a light cycle game for two to four
// players sharing one keyboard.
//
// Each bike moves on a fixed 1920×1080 logical arena and leaves a solid
// trail behind it. A bike dies when it leaves the arena, meets another bike
// head on, or touches a trail. The last bike standing wins the round. Menu
// transitions and banners are driven by the keyframe animations in
// package anim.
package tron

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
	"github.com/vovakirdan/lightbike/internal/registry"
)

// Minimum terminal size the arena is drawn at.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// Menu choices. Choice i < choiceQuit starts a game with i+2 players.
const (
	numChoices = 4
	choiceQuit = numChoices - 1
)

const (
	titleText = "Light Bike"
	drawText  = "Draw !"
	startText = "Starting Game !"
)

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// startPlayers skips the menu for the first round when in 2..4
	startPlayers int

	logger = log.Default()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPlayers makes the first round start with n players without waiting
// for a menu choice. Zero restores the menu.
func SetPlayers(n int) {
	startPlayers = n
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements the light bike game logic.
type Game struct {
	cfg      config.TronConfig
	fixedCfg bool
	runtime  core.RuntimeConfig
	log      *log.Logger

	tracks *Tracks
	sched  *anim.Scheduler
	frame  displayList
	banner *anim.Playback // Most recent banner or start playback

	bikes    []*Bike
	numBikes int
	choice   int
	tick     int64

	started    bool // Round running or ending
	ended      bool // End banner playing
	menuHidden bool // Start animation playing
	paused     bool
	exit       bool
	tooSmall   bool
	preset     int

	roundStart int64
	rounds     int
	result     *registry.MatchResult

	// Text sprites
	title     *core.Sprite
	choices   [numChoices]*core.Sprite
	deathText [config.MaxPlayers]*core.Sprite
	winText   [config.MaxPlayers]*core.Sprite
	drawText  *core.Sprite
	startText *core.Sprite

	background colorful.Color
	highlight  colorful.Color
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{sched: anim.NewScheduler(), log: logger}
}

// NewWithConfig creates a game with a fixed configuration and tracks.
// A nil tracks uses the built-in ones.
func NewWithConfig(cfg config.TronConfig, tracks *Tracks) *Game {
	g := New()
	g.cfg = cfg
	g.fixedCfg = true
	g.tracks = tracks
	return g
}

func init() {
	registry.Register("tron", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tron"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return titleText
}

// Reset initializes the game and returns to the menu, or straight into a
// round when a player count was preset.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.load()

	g.sched.Clear()
	g.sched.SetLogger(g.log)
	g.frame.reset()
	g.banner = nil
	g.tick = 0
	g.rounds = 0
	g.paused = false
	g.exit = false
	g.result = nil
	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	g.resetRound()

	if g.preset >= 2 && g.preset <= config.MaxPlayers {
		g.choice = g.preset - 2
		g.confirmChoice(g.now())
	}
}

// load reads the configuration and tracks the first time through.
func (g *Game) load() {
	if !g.fixedCfg {
		cfg, err := config.LoadTron(configPath)
		if err != nil {
			g.log.Warn("using default config", "err", err)
			cfg = config.DefaultTronConfig()
		}
		g.cfg = cfg
		g.fixedCfg = true
		g.preset = startPlayers
	}

	if g.tracks == nil {
		tracks, err := LoadTracks(context.Background(), g.cfg.Animations, g.log)
		if err != nil {
			g.log.Error("loading tracks", "err", err)
			tracks = BuiltinTracks()
		}
		g.tracks = tracks
	}

	if g.title == nil {
		g.buildSprites()
	}
}

func (g *Game) buildSprites() {
	white := core.ColorWhite.RGB()

	g.title = core.NewSprite(titleText, white)
	for i := range g.choices {
		label := "Quit"
		if i != choiceQuit {
			label = fmt.Sprintf("%d player", i+2)
		}
		g.choices[i] = core.NewSprite(label, white)
	}
	for i := range config.MaxPlayers {
		g.deathText[i] = core.NewSprite(fmt.Sprintf("Player %d Died !", i+1), white)
		g.winText[i] = core.NewSprite(fmt.Sprintf("Player %d Wins !", i+1), white)
	}
	g.drawText = core.NewSprite(drawText, white)
	g.startText = core.NewSprite(startText, white)

	g.background = core.ParseHex(g.cfg.Arena.Background, colorful.Color{R: 100.0 / 255, G: 100.0 / 255, B: 100.0 / 255})
	g.highlight = core.ParseHex(g.cfg.Text.Highlight, colorful.Color{R: 1, G: 50.0 / 255, B: 50.0 / 255})
}

// resetRound puts fresh bikes in their corners and shows the menu.
// Live animations are left alone.
func (g *Game) resetRound() {
	g.bikes = spawnBikes(g.cfg)
	g.numBikes = config.MaxPlayers
	g.choice = 0
	g.started = false
	g.ended = false
	g.menuHidden = false
}

// Close stops every animation and releases the tracks. A closed game
// ignores further steps until it is Reset.
func (g *Game) Close() error {
	g.sched.Clear()
	g.banner = nil
	g.exit = true
	g.tracks.Release()
	g.tracks = nil
	return nil
}

// Resize updates the screen size without touching the game state.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < MinScreenW || h < MinScreenH
}

// now returns the current frame time in milliseconds.
func (g *Game) now() int64 {
	return g.runtime.TickMillis(g.tick)
}

func (g *Game) center() anim.Vec2 {
	return anim.Vec2{X: g.cfg.Arena.Width / 2, Y: g.cfg.Arena.Height / 2}
}

// Step advances the game by one tick using a single input frame. Menu keys
// are read from it and it also steers player 1.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.PlayerShared, in)
	m.SetPlayer(core.Player1, in)
	return g.StepMulti(m)
}

// StepMulti advances the game by one tick.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.exit {
		return core.StepResult{State: g.State()}
	}

	if in.Shared().Has(core.ActionPause) && g.started {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	now := g.now()

	g.handleInput(in, now)
	if g.exit {
		return core.StepResult{State: g.State()}
	}

	g.frame.reset()
	g.sched.RenderAll(&g.frame, now)

	switch {
	case !g.started:
	case g.alive() <= 1:
		g.finishRound(now)
	default:
		g.moveBikes()
		g.checkCollisions(now)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.MultiInputFrame, now int64) {
	switch {
	case !g.started:
		if !g.menuHidden {
			g.menuInput(in.Shared(), now)
		}
	case g.alive() > 1:
		g.steer(in, now)
	}
}

func (g *Game) menuInput(in core.InputFrame, now int64) {
	switch {
	case in.Has(core.ActionDown):
		g.choice = core.Clamp(g.choice+1, 0, numChoices-1)
	case in.Has(core.ActionUp):
		g.choice = core.Clamp(g.choice-1, 0, numChoices-1)
	case in.Has(core.ActionConfirm):
		g.confirmChoice(now)
	}
}

// confirmChoice quits or hides the menu and plays the start animation.
// The round begins when it finishes.
func (g *Game) confirmChoice(now int64) {
	if g.choice == choiceQuit {
		g.exit = true
		return
	}

	g.numBikes = g.choice + 2
	g.menuHidden = true
	g.playBanner(g.tracks.Start, g.startText, now, func() {
		g.started = true
		g.menuHidden = false
		g.roundStart = g.now()
		g.log.Debug("round started", "players", g.numBikes)
	})
}

// playBanner starts track on s at the arena centre and makes it the
// current banner until it finishes.
func (g *Game) playBanner(track *anim.Track, s *core.Sprite, now int64, onDone anim.CompletionFunc) {
	var p *anim.Playback
	p = g.sched.Start(track, s, g.center(), now, func() {
		if g.banner == p {
			g.banner = nil
		}
		if onDone != nil {
			onDone()
		}
	})
	g.banner = p
}

var steerOrder = [...]core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}

func (g *Game) steer(in core.MultiInputFrame, now int64) {
	for i := range g.numBikes {
		frame := in.Player(core.PlayerFromIndex(i))
		for _, a := range steerOrder {
			if !frame.Has(a) {
				continue
			}
			dir, _ := directionFor(a)
			g.bikes[i].turn(dir, now, g.cfg.Bike)
		}
	}
}

func (g *Game) alive() int {
	n := 0
	for _, b := range g.bikes[:g.numBikes] {
		if !b.Dead {
			n++
		}
	}
	return n
}

func (g *Game) moveBikes() {
	for _, b := range g.bikes[:g.numBikes] {
		if !b.Dead {
			b.move(g.cfg.Bike.Speed)
		}
	}
}

// checkCollisions kills every bike that crashed this frame. Deaths are
// applied together so bikes crashing into each other both die.
func (g *Game) checkCollisions(now int64) {
	var dead [config.MaxPlayers]bool
	bikes := g.bikes[:g.numBikes]

	for i, a := range bikes {
		for _, b := range bikes {
			if a.Dead || b.Dead {
				continue
			}
			if crashed(a, b, g.cfg) {
				dead[i] = true
				g.sched.Clear()
				g.playBanner(g.tracks.Death, g.deathText[i], now, nil)
			}
		}
	}

	for i, b := range bikes {
		if dead[i] {
			b.Dead = true
			g.log.Debug("bike crashed", "player", i+1, "x", b.Pos.X, "y", b.Pos.Y)
		}
	}
}

// finishRound shows the win or draw banner once. The menu comes back when
// it finishes.
func (g *Game) finishRound(now int64) {
	if g.ended {
		return
	}

	winner := 0
	for i, b := range g.bikes[:g.numBikes] {
		if !b.Dead {
			winner = i + 1
			g.sched.Clear()
			g.playBanner(g.tracks.Death, g.winText[i], now, g.resetRound)
		}
	}
	if winner == 0 {
		g.sched.Clear()
		g.playBanner(g.tracks.Death, g.drawText, now, g.resetRound)
	}
	g.ended = true
	g.rounds++

	g.result = &registry.MatchResult{
		Players:    g.numBikes,
		Winner:     winner,
		DurationMs: now - g.roundStart,
	}
	g.log.Info("round over", "players", g.numBikes, "winner", winner, "duration_ms", now-g.roundStart)
}

// TakeResult returns the result of the last finished round once.
func (g *Game) TakeResult() (registry.MatchResult, bool) {
	if g.result == nil {
		return registry.MatchResult{}, false
	}
	r := *g.result
	g.result = nil
	return r, true
}

// State returns the current game state. Score counts finished rounds.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.rounds,
		Paused: g.paused,
		Exit:   g.exit,
	}
}

// Banners returns the texts drawn by the last animation pass.
func (g *Game) Banners() []string {
	return g.frame.texts()
}

// Bikes returns the bikes taking part in the current round.
func (g *Game) Bikes() []*Bike {
	return g.bikes[:g.numBikes]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	c := core.NewCanvas(dst, g.cfg.Arena.Width, g.cfg.Arena.Height)
	c.SetBackground(g.background)
	c.Clear()

	g.frame.replay(c)

	switch {
	case !g.started:
		if !g.menuHidden {
			g.renderMenu(c)
		}
	case !g.ended:
		g.renderBikes(c)
	}

	if g.paused {
		g.renderOverlay(dst, "PAUSED", "Press ESC to resume")
	}
}

func (g *Game) renderMenu(c *core.Canvas) {
	center := g.center()

	w, h := g.title.Size()
	w *= g.cfg.Text.TitleScale
	h *= g.cfg.Text.TitleScale
	r := core.CenteredRect(center, w, h)
	r.Y -= r.H * 2
	g.title.SetTint(core.Cycle(g.now()))
	g.title.SetOpacity(1)
	c.DrawRotated(g.title, r, 0)

	for i, s := range g.choices {
		w, h := s.Size()
		w *= g.cfg.Text.ChoiceScale
		h *= g.cfg.Text.ChoiceScale
		r := core.CenteredRect(center, w, h)
		r.Y += r.H * 2 * float64(i+1)

		if g.choice == i {
			s.SetTint(g.highlight)
		} else {
			s.SetTint(core.ColorWhite.RGB())
		}
		s.SetOpacity(1)
		c.DrawRotated(s, r, 0)
	}
}

// renderBikes draws the trails of the living bikes, then the bikes on top.
func (g *Game) renderBikes(c *core.Canvas) {
	bikes := g.bikes[:g.numBikes]
	for _, b := range bikes {
		if b.Dead {
			continue
		}
		for k := 1; k < len(b.Trail); k++ {
			c.FillRect(segmentRect(b.Trail[k-1], b.Trail[k], g.cfg.Bike.TrailSize), '▓', b.Color)
		}
	}
	for _, b := range bikes {
		if !b.Dead {
			c.FillRect(b.Rect(g.cfg.Bike), '█', b.Color)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// bannerScale returns the current horizontal scale of the latest banner,
// or zero when none is playing.
func (g *Game) bannerScale() float64 {
	if g.banner == nil {
		return 0
	}
	t, ok := g.banner.Peek(g.now())
	if !ok || math.IsNaN(t.Scale.X) {
		return 0
	}
	return t.Scale.X
}
