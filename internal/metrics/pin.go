package metrics

import (
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
)

// PinViolation records the largest displacement or velocity magnitude ever
// seen on a static cell. Must stay exactly zero for a correct run.
type PinViolation struct {
	name    string
	dynamic *mesh.Mask
	worst   float64
}

func NewPinViolation(dynamic *mesh.Mask) *PinViolation {
	return &PinViolation{name: "pin_violation", dynamic: dynamic}
}

func (p *PinViolation) Name() string { return p.name }

func (p *PinViolation) Observe(pos, vel *mesh.Grid, t float64) {
	for i, dyn := range p.dynamic.Data {
		if dyn {
			continue
		}
		if a := math.Abs(pos.Data[i]); a > p.worst {
			p.worst = a
		}
		if a := math.Abs(vel.Data[i]); a > p.worst {
			p.worst = a
		}
	}
}

func (p *PinViolation) Value() float64 {
	return p.worst
}

func (p *PinViolation) Reset() {
	p.worst = 0
}
