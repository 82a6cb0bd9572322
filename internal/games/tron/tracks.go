package tron

import (
	"context"
	_ "embed"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/config"
)

//go:embed tracks/death.xml
var deathXML []byte

//go:embed tracks/start.xml
var startXML []byte

// Built-in track names.
const (
	TrackDeath = "death"
	TrackStart = "start"
)

// BuiltinTrack returns the embedded document for name, or nil.
func BuiltinTrack(name string) []byte {
	switch name {
	case TrackDeath:
		return deathXML
	case TrackStart:
		return startXML
	}
	return nil
}

// Tracks holds the animations the game plays.
// Death is used for the death, win and draw banners.
type Tracks struct {
	Death *anim.Track
	Start *anim.Track
}

// BuiltinTracks parses the embedded tracks.
func BuiltinTracks() *Tracks {
	return &Tracks{
		Death: anim.MustLoad(deathXML),
		Start: anim.MustLoad(startXML),
	}
}

// LoadTracks loads both tracks concurrently. A configured file that cannot
// be loaded is logged and replaced by the built-in track; only a broken
// built-in document or a cancelled context is returned as an error.
func LoadTracks(ctx context.Context, paths config.AnimationsConfig, logger *log.Logger) (*Tracks, error) {
	if logger == nil {
		logger = log.Default()
	}

	var out Tracks
	g, ctx := errgroup.WithContext(ctx)
	load := func(name, path string, dst **anim.Track) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != "" {
				t, err := anim.LoadFile(path)
				if err == nil {
					*dst = t
					return nil
				}
				logger.Warn("using built-in track", "track", name, "err", err)
			}
			t, err := anim.Load(BuiltinTrack(name))
			if err != nil {
				return err
			}
			*dst = t
			return nil
		})
	}
	load(TrackDeath, paths.Death, &out.Death)
	load(TrackStart, paths.Start, &out.Start)

	if err := g.Wait(); err != nil {
		out.Release()
		return nil, err
	}
	return &out, nil
}

// Release drops both tracks. The scheduler playing them must be cleared
// first.
func (t *Tracks) Release() {
	if t == nil {
		return
	}
	t.Death.Release()
	t.Start.Release()
}
