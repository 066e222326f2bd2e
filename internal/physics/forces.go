package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
)

// Params are the spring properties shared by the whole mesh.
type Params struct {
	Elastic       float64 // spring constant, N/m
	NaturalLength float64 // rest length, m
	Separation    float64 // in-plane distance between grid neighbors, m
}

func (p Params) Validate() error {
	if p.Elastic <= 0 {
		return fmt.Errorf("physics: elastic constant must be positive, got %g", p.Elastic)
	}
	if p.NaturalLength < 0 {
		return fmt.Errorf("physics: natural length must be non-negative, got %g", p.NaturalLength)
	}
	if p.Separation <= 0 {
		return fmt.Errorf("physics: particle separation must be positive, got %g", p.Separation)
	}
	return nil
}

var neighbors = [4][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

// interior cell count above which the stencil is split across workers
const parallelThreshold = 64 * 64

// Forces returns the net vertical elastic force on every particle given the
// current displacement grid. Pure: pos is not modified and the result depends
// only on pos and p. Border cells are never written and stay exactly zero.
func Forces(pos *mesh.Grid, p Params) *mesh.Grid {
	out := mesh.New(pos.Ny, pos.Nx)
	if pos.Ny < 3 || pos.Nx < 3 {
		return out
	}
	if (pos.Ny-2)*(pos.Nx-2) >= parallelThreshold {
		parallelRows(1, pos.Ny-1, func(i0, i1 int) {
			forcesRange(pos, out, p, i0, i1)
		})
		return out
	}
	forcesRange(pos, out, p, 1, pos.Ny-1)
	return out
}

// forcesRange fills out for interior rows [i0, i1). Rows may be computed
// concurrently: each cell reads pos only and writes its own output cell.
func forcesRange(pos, out *mesh.Grid, p Params, i0, i1 int) {
	d2 := p.Separation * p.Separation
	for i := i0; i < i1; i++ {
		for j := 1; j < pos.Nx-1; j++ {
			z := pos.At(i, j)
			var f float64
			for _, n := range neighbors {
				dz := z - pos.At(i+n[0], j+n[1])
				length := math.Sqrt(d2 + dz*dz)
				elongation := length - p.NaturalLength
				f += -p.Elastic * elongation * dz / length
			}
			out.Set(i, j, f)
		}
	}
}
