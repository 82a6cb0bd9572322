package anim

import (
	"container/list"

	"github.com/charmbracelet/log"
)

// CompletionFunc is called once when a playback finishes.
// Any context it needs is bound by the caller.
type CompletionFunc func()

// Playback is one timed instance of a Track bound to a drawable.
type Playback struct {
	track    *Track
	drawable Drawable
	anchor   Vec2
	start    int64
	cursor   int // Index of the last keyframe whose time has passed
	onDone   CompletionFunc
}

// Track returns the track being played.
func (p *Playback) Track() *Track {
	return p.track
}

// StartTime returns the start timestamp in milliseconds.
func (p *Playback) StartTime() int64 {
	return p.start
}

// at returns the interpolated transform for the given frame time, searching
// forward from cursor, and the cursor reached. It reports false once the
// playback has finished.
func (p *Playback) at(cursor int, now int64) (Transform, int, bool) {
	var frames []Keyframe
	if p.track != nil {
		frames = p.track.frames
	}

	elapsed := now - p.start
	for cursor+1 < len(frames) && frames[cursor+1].Time < elapsed {
		cursor++
	}
	if cursor+1 >= len(frames) {
		return Transform{}, cursor, false
	}

	cur := frames[cursor]
	next := frames[cursor+1]
	coeff := float64(elapsed-cur.Time) / float64(next.Time-cur.Time)

	t := interpolate(cur, next, coeff)
	t.Position.X += p.anchor.X
	t.Position.Y += p.anchor.Y
	return t, cursor, true
}

// Advance moves the cursor to the given frame time and returns the
// interpolated transform without drawing. It reports false once the
// playback has finished. Finished playbacks are only removed by RenderAll.
func (p *Playback) Advance(now int64) (Transform, bool) {
	t, cursor, ok := p.at(p.cursor, now)
	p.cursor = cursor
	return t, ok
}

// Peek is like Advance but leaves the cursor where it is.
func (p *Playback) Peek(now int64) (Transform, bool) {
	t, _, ok := p.at(p.cursor, now)
	return t, ok
}

// render evaluates the playback and issues its draw call.
// Returns false when the playback has finished; nothing is drawn then.
func (p *Playback) render(c Canvas, now int64) bool {
	t, ok := p.Advance(now)
	if !ok {
		return false
	}
	if p.drawable == nil || c == nil {
		return true
	}

	w, h := p.drawable.Size()
	w *= t.Scale.X
	h *= t.Scale.Y
	dst := Rect{
		X: t.Position.X - w/2,
		Y: t.Position.Y - h/2,
		W: w,
		H: h,
	}

	p.drawable.SetOpacity(t.Alpha)
	c.DrawRotated(p.drawable, dst, t.Rotation)
	return true
}

// Scheduler holds the live playbacks in start order and renders them once
// per frame. It is not safe for concurrent use; all calls, including those
// made from completion handlers, must come from the frame loop.
type Scheduler struct {
	entries *list.List
	clears  uint64 // Bumped by Clear so a render pass can notice it
	logger  *log.Logger
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{entries: list.New()}
}

// SetLogger enables debug logging of finished playbacks. nil disables it.
func (s *Scheduler) SetLogger(l *log.Logger) {
	s.logger = l
}

// Start appends a playback of track drawn with d, centered on anchor, that
// started at the given time in milliseconds. onDone may be nil. A nil
// drawable makes the playback a pure timer.
//
// The start time is used as given; it may lie in the past or the future.
func (s *Scheduler) Start(track *Track, d Drawable, anchor Vec2, start int64, onDone CompletionFunc) *Playback {
	p := &Playback{
		track:    track,
		drawable: d,
		anchor:   anchor,
		start:    start,
		onDone:   onDone,
	}
	s.entries.PushBack(p)
	return p
}

// RenderAll advances and draws every playback against the same frame time.
//
// Finished playbacks have their completion handler called and are then
// removed. Handlers may call Start; new playbacks are appended after the
// current position and are rendered in this same pass. Handlers may call
// Clear; the pass then stops once the handler returns.
func (s *Scheduler) RenderAll(c Canvas, now int64) {
	for e := s.entries.Front(); e != nil; {
		p := e.Value.(*Playback)
		if p.render(c, now) {
			e = e.Next()
			continue
		}

		if s.logger != nil {
			s.logger.Debug("playback finished", "start", p.start, "elapsed", now-p.start, "keyframes", p.track.Len())
		}

		clears := s.clears
		if p.onDone != nil {
			p.onDone()
		}
		if s.clears != clears {
			// The handler cleared the scheduler, e no longer belongs to it.
			return
		}

		next := e.Next()
		s.entries.Remove(e)
		e = next
	}
}

// Clear drops every playback without calling any completion handler.
func (s *Scheduler) Clear() {
	s.entries = list.New()
	s.clears++
}

// Len returns the number of live playbacks.
func (s *Scheduler) Len() int {
	return s.entries.Len()
}
