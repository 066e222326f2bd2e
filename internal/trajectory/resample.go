// Package trajectory reduces a full per-step simulation history to an
// evenly spaced sequence suitable for playback at a fixed frame rate.
package trajectory

import (
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
	"github.com/san-kum/meshwave/internal/sim"
)

// Sampled is the exportable slice of a trajectory: rounded times and the
// matching displacement frames, row k of Times corresponding to Frames[k].
type Sampled struct {
	Times  []float64
	Frames []*mesh.Grid
}

// Indices picks floor(fps·totalTime) sample positions into a history of
// length n. Frames are selected, not interpolated: every index is an exact
// prior simulation state. All indices are in [0, n); a duration shorter
// than one output frame yields an empty slice.
func Indices(n int, totalTime float64, fps int) []int {
	if n <= 0 || totalTime <= 0 || fps <= 0 {
		return []int{}
	}
	rows := int(float64(fps) * totalTime)
	idx := make([]int, 0, rows)
	for k := 0; k < rows; k++ {
		idx = append(idx, int(float64(k)/float64(rows)*float64(n)))
	}
	return idx
}

// Sample rounds the full history to the given precision, then downsamples
// it to the output frame rate. Rounding happens first so exported times and
// displacements agree with what the index math saw.
func Sample(result *sim.Result, fps, decimals int) *Sampled {
	times := roundTimes(result.Times, decimals)

	totalTime := 0.0
	if len(times) > 0 {
		totalTime = times[len(times)-1]
	}
	idx := Indices(len(times), totalTime, fps)

	out := &Sampled{
		Times:  make([]float64, 0, len(idx)),
		Frames: make([]*mesh.Grid, 0, len(idx)),
	}
	for _, k := range idx {
		frame := result.Positions[k].Clone()
		frame.Round(decimals)
		out.Times = append(out.Times, times[k])
		out.Frames = append(out.Frames, frame)
	}
	return out
}

func roundTimes(times []float64, decimals int) []float64 {
	p := math.Pow(10, float64(decimals))
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = math.Round(t*p) / p
	}
	return out
}
