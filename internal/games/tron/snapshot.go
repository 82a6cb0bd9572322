package tron

import "math"

// Snapshot contains the game state for replays and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     int64
	NumBikes int
	Choice   int
	Started  bool
	Ended    bool
	Rounds   int

	// Bike state (each bike is 5 floats: X, Y, Dir, Dead, TrailLen)
	BikeData []float64

	// Trail corners of every bike, flattened as X, Y pairs
	TrailData []float64

	Animations  int     // Live playbacks
	BannerScale float64 // Horizontal scale of the latest banner, 0 if none
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bikes := g.Bikes()
	bikeData := make([]float64, 0, len(bikes)*5)
	var trailData []float64

	for _, b := range bikes {
		dead := 0.0
		if b.Dead {
			dead = 1
		}
		bikeData = append(bikeData, b.Pos.X, b.Pos.Y, float64(b.Dir), dead, float64(len(b.Trail)))
		for _, p := range b.Trail {
			trailData = append(trailData, p.X, p.Y)
		}
	}

	return Snapshot{
		Tick:        g.tick,
		NumBikes:    g.numBikes,
		Choice:      g.choice,
		Started:     g.started,
		Ended:       g.ended,
		Rounds:      g.rounds,
		BikeData:    bikeData,
		TrailData:   trailData,
		Animations:  g.sched.Len(),
		BannerScale: g.bannerScale(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	//#nosec G115 -- hash computation
	h := uint64(snap.Tick)
	h = h*31 + uint64(snap.NumBikes)
	h = h*31 + uint64(snap.Choice)
	h = h*31 + boolBit(snap.Started)
	h = h*31 + boolBit(snap.Ended)
	h = h*31 + uint64(snap.Rounds)

	for _, v := range snap.BikeData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.TrailData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + uint64(snap.Animations)
	h = h*31 + math.Float64bits(snap.BannerScale)
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
