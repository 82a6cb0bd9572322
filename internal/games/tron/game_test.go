package tron

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  192,
	ScreenH:  54,
	TickRate: 60,
	Seed:     12345,
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultTronConfig(), nil)
	g.log = log.New(io.Discard)
	g.Reset(testRuntime)
	return g
}

func shared(actions ...core.Action) core.MultiInputFrame {
	m := core.NewMultiInputFrame()
	for _, a := range actions {
		m.Add(core.PlayerShared, a)
	}
	return m
}

func seat(p core.PlayerID, a core.Action) core.MultiInputFrame {
	m := core.NewMultiInputFrame()
	m.Add(p, a)
	return m
}

func idle() core.MultiInputFrame {
	return core.NewMultiInputFrame()
}

// startRound picks the menu entry and steps until the start animation has
// finished.
func startRound(t *testing.T, g *Game, choice int) {
	t.Helper()
	for range choice {
		g.StepMulti(shared(core.ActionDown))
	}
	g.StepMulti(shared(core.ActionConfirm))

	for range 120 {
		if g.started {
			return
		}
		g.StepMulti(idle())
	}
	t.Fatal("round never started")
}

// stepUntil steps with no input until cond holds.
func stepUntil(t *testing.T, g *Game, limit int, cond func() bool) {
	t.Helper()
	for range limit {
		if cond() {
			return
		}
		g.StepMulti(idle())
	}
	if !cond() {
		t.Fatalf("condition not met after %d ticks", limit)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.MultiInputFrame, 400)
	for i := range inputs {
		inputs[i] = idle()
		switch {
		case i == 2:
			inputs[i].Add(core.PlayerShared, core.ActionDown)
		case i == 4:
			inputs[i].Add(core.PlayerShared, core.ActionConfirm)
		case i > 70 && i%40 == 0:
			inputs[i].Add(core.Player1, core.ActionRight)
			inputs[i].Add(core.Player3, core.ActionLeft)
		case i > 70 && i%40 == 20:
			inputs[i].Add(core.Player1, core.ActionDown)
			inputs[i].Add(core.Player2, core.ActionLeft)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t)
		for _, in := range inputs {
			g.StepMulti(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", snap1.Tick, snap2.Tick)
	}
	if !slices.Equal(snap1.BikeData, snap2.BikeData) {
		t.Errorf("Determinism failed: bike states differ")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t)

	if g.started || g.menuHidden || g.choice != 0 {
		t.Errorf("after Reset: started=%v menuHidden=%v choice=%d, expected the menu", g.started, g.menuHidden, g.choice)
	}
	if len(g.Bikes()) != config.MaxPlayers {
		t.Errorf("len(Bikes()) = %d, expected %d", len(g.Bikes()), config.MaxPlayers)
	}
	if g.ID() != "tron" || g.Title() != "Light Bike" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestMenuNavigation(t *testing.T) {
	g := newTestGame(t)

	for range 5 {
		g.StepMulti(shared(core.ActionDown))
	}
	if g.choice != 3 {
		t.Errorf("choice = %d after five downs, expected 3", g.choice)
	}

	g.StepMulti(shared(core.ActionUp))
	g.StepMulti(shared(core.ActionUp))
	if g.choice != 1 {
		t.Errorf("choice = %d, expected 1", g.choice)
	}

	for range 3 {
		g.StepMulti(shared(core.ActionUp))
	}
	if g.choice != 0 {
		t.Errorf("choice = %d, expected clamp at 0", g.choice)
	}
}

func TestPlayerCountFromMenu(t *testing.T) {
	tests := []struct {
		choice  int
		players int
	}{
		{0, 2},
		{1, 3},
		{2, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.players), func(t *testing.T) {
			g := newTestGame(t)
			startRound(t, g, tt.choice)
			if got := len(g.Bikes()); got != tt.players {
				t.Errorf("len(Bikes()) = %d, expected %d", got, tt.players)
			}
		})
	}
}

func TestStartAnimationGatesRound(t *testing.T) {
	g := newTestGame(t)

	// Confirmed at tick 1 (16ms). The start track finishes once more than
	// 1000ms have elapsed: tick 62 is the first frame at 1033ms.
	g.StepMulti(shared(core.ActionConfirm))
	if !g.menuHidden {
		t.Fatal("menu still visible after confirm")
	}

	g.StepMulti(shared(core.ActionDown))
	if g.choice != 0 {
		t.Error("menu input was handled while the start animation played")
	}
	if !slices.Contains(g.Banners(), startText) {
		t.Errorf("Banners() = %v, expected %q", g.Banners(), startText)
	}

	for g.tick < 61 {
		g.StepMulti(idle())
	}
	if g.started {
		t.Fatalf("round started at tick %d", g.tick)
	}
	if y := g.Bikes()[0].Pos.Y; y != 100 {
		t.Errorf("bike moved before the start: y = %v", y)
	}

	g.StepMulti(idle())
	if !g.started || g.menuHidden {
		t.Fatalf("tick 62: started=%v menuHidden=%v, expected the round running", g.started, g.menuHidden)
	}
	if y := g.Bikes()[0].Pos.Y; y != 104 {
		t.Errorf("bike y = %v on the first round tick, expected 104", y)
	}
}

func TestQuitChoice(t *testing.T) {
	g := newTestGame(t)
	for range 3 {
		g.StepMulti(shared(core.ActionDown))
	}
	res := g.StepMulti(shared(core.ActionConfirm))

	if !res.State.Exit {
		t.Fatal("choosing Quit did not request exit")
	}

	tick := g.tick
	g.StepMulti(idle())
	if g.tick != tick {
		t.Error("game kept running after exit")
	}
}

func TestNoReverse(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	g.StepMulti(seat(core.Player1, core.ActionUp))
	b := g.Bikes()[0]
	if b.Dir != South || len(b.Trail) != 2 {
		t.Errorf("reverse turn changed the bike: dir %v, %d trail points", b.Dir, len(b.Trail))
	}

	g.StepMulti(seat(core.Player1, core.ActionLeft))
	if b.Dir != West || len(b.Trail) != 3 {
		t.Errorf("after left: dir %v, %d trail points, expected west with 3", b.Dir, len(b.Trail))
	}
}

func TestSeatsSteerOwnBikes(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 2)

	g.StepMulti(seat(core.Player4, core.ActionLeft))
	bikes := g.Bikes()
	if bikes[3].Dir != West {
		t.Errorf("player 4 heading %v, expected west", bikes[3].Dir)
	}
	for i := range 3 {
		if len(bikes[i].Trail) != 2 {
			t.Errorf("player %d turned without input", i+1)
		}
	}
}

func TestWallCrashIsDraw(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	// Both bikes head south side by side and reach the wall together.
	bikes := g.Bikes()
	stepUntil(t, g, 400, func() bool { return bikes[0].Dead || bikes[1].Dead })
	if !bikes[0].Dead || !bikes[1].Dead {
		t.Fatalf("dead = %v/%v, expected both bikes to crash on the same tick", bikes[0].Dead, bikes[1].Dead)
	}

	g.StepMulti(idle())
	if got := g.Banners(); !slices.Equal(got, []string{"Player 2 Died !"}) {
		t.Errorf("Banners() = %v, expected the last death banner", got)
	}

	res, ok := g.TakeResult()
	if !ok {
		t.Fatal("no result after the round ended")
	}
	if res.Winner != 0 || res.Players != 2 {
		t.Errorf("result = %+v, expected a 2 player draw", res)
	}
	if _, ok := g.TakeResult(); ok {
		t.Error("result was reported twice")
	}

	g.StepMulti(idle())
	if got := g.Banners(); !slices.Equal(got, []string{drawText}) {
		t.Errorf("Banners() = %v, expected %q", got, drawText)
	}

	stepUntil(t, g, 200, func() bool { return !g.started })
	if g.ended || g.choice != 0 || len(g.Bikes()) != config.MaxPlayers {
		t.Errorf("after the banner: ended=%v choice=%d bikes=%d, expected a fresh menu", g.ended, g.choice, len(g.Bikes()))
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected one finished round", g.State().Score)
	}
}

func TestWinnerAndReset(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	bikes := g.Bikes()
	g.StepMulti(seat(core.Player1, core.ActionLeft))
	stepUntil(t, g, 40, func() bool { return bikes[0].Dead })
	if bikes[1].Dead {
		t.Fatal("player 2 died too")
	}

	// Steering is ignored once a single bike is left.
	g.StepMulti(seat(core.Player2, core.ActionLeft))
	if bikes[1].Dir != South {
		t.Error("last bike turned after the round was decided")
	}
	if got := g.Banners(); !slices.Equal(got, []string{"Player 1 Died !"}) {
		t.Errorf("Banners() = %v, expected the death banner", got)
	}

	res, ok := g.TakeResult()
	if !ok || res.Winner != 2 {
		t.Errorf("result = %+v (%v), expected player 2 to win", res, ok)
	}
	if res.DurationMs <= 0 {
		t.Errorf("DurationMs = %d, expected a positive round length", res.DurationMs)
	}

	pos := bikes[1].Pos
	g.StepMulti(idle())
	if got := g.Banners(); !slices.Equal(got, []string{"Player 2 Wins !"}) {
		t.Errorf("Banners() = %v, expected the win banner", got)
	}
	if bikes[1].Pos != pos {
		t.Error("winner kept moving during the banner")
	}

	stepUntil(t, g, 200, func() bool { return !g.started })
	if g.menuHidden {
		t.Error("menu hidden after reset")
	}
}

func TestHeadOnKillsBoth(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	in := idle()
	in.Add(core.Player1, core.ActionRight)
	in.Add(core.Player2, core.ActionLeft)
	g.StepMulti(in)

	bikes := g.Bikes()
	stepUntil(t, g, 400, func() bool { return bikes[0].Dead || bikes[1].Dead })
	if !bikes[0].Dead || !bikes[1].Dead {
		t.Errorf("dead = %v/%v, expected a head-on crash to kill both", bikes[0].Dead, bikes[1].Dead)
	}
	if d := bikes[1].Pos.X - bikes[0].Pos.X; d > 70 {
		t.Errorf("bikes %v apart when they crashed, expected their noses to touch", d)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	res := g.StepMulti(shared(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause did not take effect")
	}
	snap := g.Snapshot()
	for range 10 {
		g.StepMulti(idle())
	}
	after := g.Snapshot()
	if snap.Hash() != after.Hash() {
		t.Error("state changed while paused")
	}

	g.StepMulti(shared(core.ActionPause))
	g.StepMulti(idle())
	if g.tick == snap.Tick {
		t.Error("clock did not resume")
	}
}

func TestPauseIgnoredInMenu(t *testing.T) {
	g := newTestGame(t)
	if g.StepMulti(shared(core.ActionPause)).State.Paused {
		t.Error("menu can be paused")
	}
}

func TestPresetPlayersSkipMenu(t *testing.T) {
	g := NewWithConfig(config.DefaultTronConfig(), nil)
	g.log = log.New(io.Discard)
	g.preset = 3
	g.Reset(testRuntime)

	if !g.menuHidden || len(g.Bikes()) != 3 {
		t.Fatalf("menuHidden=%v bikes=%d, expected the start animation for 3", g.menuHidden, len(g.Bikes()))
	}
	stepUntil(t, g, 120, func() bool { return g.started })
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithConfig(config.DefaultTronConfig(), nil)
	g.log = log.New(io.Discard)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60})

	g.StepMulti(shared(core.ActionConfirm))
	if g.tick != 0 || g.menuHidden {
		t.Error("game ran on a screen that is too small")
	}

	s := core.NewScreen(40, 12)
	g.Render(s)
	if !strings.Contains(s.String(), "Window too small") {
		t.Error("too small message not rendered")
	}

	g.Resize(192, 54)
	g.StepMulti(shared(core.ActionConfirm))
	if !g.menuHidden {
		t.Error("game did not resume after growing the screen")
	}
}

func TestRenderMenu(t *testing.T) {
	g := newTestGame(t)
	g.StepMulti(idle())

	s := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(s)

	highlight := core.ParseHex(g.cfg.Text.Highlight, core.ColorWhite.RGB()).Hex()
	found := false
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c.FG == highlight && c.Rune != ' ' {
				found = true
			}
		}
	}
	if !found {
		t.Error("selected menu entry is not highlighted")
	}
	if bg := s.GetCell(0, 0).BG; bg != "#646464" {
		t.Errorf("background = %q, expected #646464", bg)
	}
}

func TestRenderBikes(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)

	s := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(s)

	c := core.NewCanvas(s, g.cfg.Arena.Width, g.cfg.Arena.Height)
	b := g.Bikes()[0]
	col, row := c.ToCell(b.Pos.X, b.Pos.Y)
	cell := s.GetCell(col, row)
	if cell.Rune != '█' || cell.FG != b.Color.Hex() {
		t.Errorf("bike cell = %+v, expected a %s block", cell, b.Color.Hex())
	}

	col, row = c.ToCell(g.bikes[2].Pos.X, g.bikes[2].Pos.Y)
	if s.Get(col, row) == '█' {
		t.Error("bike 3 drawn in a 2 player round")
	}
}

func TestCloseReleasesTracks(t *testing.T) {
	g := newTestGame(t)
	g.StepMulti(shared(core.ActionConfirm))
	tracks := g.tracks

	if err := g.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if g.sched.Len() != 0 {
		t.Error("Close() left animations running")
	}
	if tracks.Start.Len() != 0 || tracks.Death.Len() != 0 {
		t.Error("Close() did not release the tracks")
	}
}

func TestSnapshotTracksBanner(t *testing.T) {
	g := newTestGame(t)
	if s := g.Snapshot(); s.BannerScale != 0 || s.Animations != 0 {
		t.Errorf("menu snapshot = %+v, expected no banner", s)
	}

	g.StepMulti(shared(core.ActionConfirm))
	for range 15 {
		g.StepMulti(idle())
	}
	s := g.Snapshot()
	if s.Animations != 1 || s.BannerScale <= 0 {
		t.Errorf("snapshot = %+v, expected the start banner growing", s)
	}
}

func TestStepAfterCloseIsIgnored(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g, 0)
	tick := g.tick

	if err := g.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Long enough for the bikes to reach the wall had the round continued.
	for range 400 {
		g.StepMulti(idle())
	}
	if g.tick != tick {
		t.Errorf("tick = %d after Close, expected %d", g.tick, tick)
	}
	if !g.State().Exit {
		t.Error("closed game does not report Exit")
	}

	g.Reset(testRuntime)
	startRound(t, g, 0)
	if g.tracks == nil || g.tracks.Start.Len() == 0 {
		t.Error("Reset after Close did not reload the tracks")
	}
}

func TestMenuConfirmAfterClose(t *testing.T) {
	g := newTestGame(t)
	g.Close()

	g.StepMulti(shared(core.ActionConfirm))
	if g.menuHidden || g.sched.Len() != 0 {
		t.Errorf("menuHidden=%v animations=%d, expected a closed game to ignore confirm", g.menuHidden, g.sched.Len())
	}
}

func TestBannerDroppedWhenFinished(t *testing.T) {
	g := newTestGame(t)

	g.StepMulti(shared(core.ActionConfirm))
	if g.banner == nil {
		t.Fatal("no banner while the start animation plays")
	}

	startRound(t, g, 0)
	if g.banner != nil {
		t.Error("start banner kept after it finished")
	}
	if s := g.Snapshot(); s.BannerScale != 0 {
		t.Errorf("BannerScale = %v, expected 0 once the banner is gone", s.BannerScale)
	}

	bikes := g.Bikes()
	stepUntil(t, g, 400, func() bool { return bikes[0].Dead })
	stepUntil(t, g, 300, func() bool { return !g.started })
	if g.banner != nil {
		t.Error("end banner kept after the round was reset")
	}
}
