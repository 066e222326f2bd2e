package physics

import (
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
)

// Energy returns the total mechanical energy of the mesh: kinetic energy of
// the dynamic particles plus elastic energy of every spring. Each spring is
// counted once by pairing every cell with its right and down neighbor.
func Energy(pos, vel, mass *mesh.Grid, dynamic *mesh.Mask, p Params) float64 {
	ke := 0.0
	for i := 0; i < pos.Ny; i++ {
		for j := 0; j < pos.Nx; j++ {
			if !dynamic.At(i, j) {
				continue
			}
			v := vel.At(i, j)
			ke += 0.5 * mass.At(i, j) * v * v
		}
	}

	pe := 0.0
	d2 := p.Separation * p.Separation
	for i := 0; i < pos.Ny; i++ {
		for j := 0; j < pos.Nx; j++ {
			if j+1 < pos.Nx {
				pe += springEnergy(pos.At(i, j), pos.At(i, j+1), d2, p)
			}
			if i+1 < pos.Ny {
				pe += springEnergy(pos.At(i, j), pos.At(i+1, j), d2, p)
			}
		}
	}

	return ke + pe
}

func springEnergy(za, zb, d2 float64, p Params) float64 {
	dz := za - zb
	elongation := math.Sqrt(d2+dz*dz) - p.NaturalLength
	return 0.5 * p.Elastic * elongation * elongation
}
