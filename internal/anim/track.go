package anim

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel errors returned (wrapped) by Load and LoadFile.
var (
	// ErrParse reports a document that is not well-formed or does not follow
	// the <animation><state/>...</animation> structure.
	ErrParse = errors.New("malformed animation")

	// ErrFileRead reports that an animation file could not be read.
	ErrFileRead = errors.New("cannot read animation file")
)

// Track is an immutable, non-empty sequence of keyframes in document order.
//
// A Track is shared read-only by every Playback started from it and must
// outlive them: the owner clears the scheduler before releasing the track.
type Track struct {
	frames []Keyframe
}

// Load parses an animation document.
// On error no Track is returned.
func Load(data []byte) (*Track, error) {
	frames, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return &Track{frames: frames}, nil
}

// LoadFile reads and parses the animation document at path.
// Read failures wrap ErrFileRead, document failures wrap ErrParse.
func LoadFile(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("anim: %w %s: %w", ErrFileRead, path, err)
	}

	track, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return track, nil
}

// MustLoad is like Load but panics on error.
// Intended for documents embedded in the binary.
func MustLoad(data []byte) *Track {
	t, err := Load(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Release drops the track's keyframes. Calling it on a nil or already
// released track is a no-op. Playbacks still referencing a released track
// finish on their next render.
func (t *Track) Release() {
	if t == nil {
		return
	}
	t.frames = nil
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.frames)
}

// Keyframes returns a copy of the keyframes in document order.
func (t *Track) Keyframes() []Keyframe {
	if t == nil {
		return nil
	}
	out := make([]Keyframe, len(t.frames))
	copy(out, t.frames)
	return out
}

// Duration returns the time offset of the last keyframe in milliseconds.
// Keyframe times are not validated, so this is not necessarily the largest one.
func (t *Track) Duration() int64 {
	if t.Len() == 0 {
		return 0
	}
	return t.frames[len(t.frames)-1].Time
}
