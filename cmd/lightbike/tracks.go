package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/games/tron"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks [file...]",
	Short: "Print the keyframes of animation tracks",
	Long: `Load animation track files and print their keyframes.
Without arguments the built-in death and start tracks are shown.

Examples:
  lightbike tracks
  lightbike tracks ./death.xml ./start.xml`,
	RunE: runTracks,
}

func runTracks(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range []string{tron.TrackDeath, tron.TrackStart} {
			track, err := anim.Load(tron.BuiltinTrack(name))
			if err != nil {
				return err
			}
			printTrack("built-in "+name, track)
			track.Release()
		}
		return nil
	}

	var failed int
	for _, path := range args {
		track, err := anim.LoadFile(path)
		switch {
		case errors.Is(err, anim.ErrFileRead):
			logger.Error("cannot read track", "path", path, "err", err)
			failed++
			continue
		case errors.Is(err, anim.ErrParse):
			logger.Error("malformed track", "path", path, "err", err)
			failed++
			continue
		case err != nil:
			return err
		}
		printTrack(path, track)
		track.Release()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tracks failed to load", failed, len(args))
	}
	return nil
}

func printTrack(name string, t *anim.Track) {
	fmt.Printf("%s: %d keyframes, %d ms\n", name, t.Len(), t.Duration())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  time\tpos\tscale\trot\talpha")
	for _, k := range t.Keyframes() {
		fmt.Fprintf(w, "  %d\t%g,%g\t%g,%g\t%g\t%g\n",
			k.Time, k.Position.X, k.Position.Y, k.Scale.X, k.Scale.Y, k.Rotation, k.Alpha)
	}
	w.Flush()
	fmt.Println()
}
