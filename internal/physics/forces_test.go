package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/meshwave/internal/mesh"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"valid", Params{Elastic: 1, NaturalLength: 1, Separation: 1}, true},
		{"zero natural length", Params{Elastic: 1, NaturalLength: 0, Separation: 1}, true},
		{"zero elastic", Params{Elastic: 0, NaturalLength: 1, Separation: 1}, false},
		{"negative natural length", Params{Elastic: 1, NaturalLength: -1, Separation: 1}, false},
		{"zero separation", Params{Elastic: 1, NaturalLength: 1, Separation: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestForces_BordersAlwaysZero(t *testing.T) {
	p := Params{Elastic: 5, NaturalLength: 0.5, Separation: 1}
	pos := mesh.New(4, 5)
	for i := range pos.Data {
		pos.Data[i] = float64(i%7) - 3
	}

	f := Forces(pos, p)

	for i := 0; i < f.Ny; i++ {
		for j := 0; j < f.Nx; j++ {
			border := i == 0 || i == f.Ny-1 || j == 0 || j == f.Nx-1
			if border && f.At(i, j) != 0 {
				t.Errorf("border force at (%d,%d) = %g, want exactly 0", i, j, f.At(i, j))
			}
		}
	}
}

// With zero natural length each spring pulls with force k·dz regardless of
// the in-plane separation, so a lone displaced center feels exactly -4k·z.
func TestForces_PretensionedIsLinear(t *testing.T) {
	p := Params{Elastic: 3, NaturalLength: 0, Separation: 1}
	pos := mesh.New(3, 3)
	pos.Set(1, 1, 0.25)

	f := Forces(pos, p)

	want := -4 * p.Elastic * 0.25
	if math.Abs(f.At(1, 1)-want) > 1e-12 {
		t.Errorf("center force = %g, want %g", f.At(1, 1), want)
	}
}

func TestForces_CenterDisplacement(t *testing.T) {
	p := Params{Elastic: 1, NaturalLength: 1, Separation: 1}
	pos := mesh.New(3, 3)
	pos.Set(1, 1, 0.1)

	f := Forces(pos, p)

	// 4 springs, each: length = sqrt(1 + 0.01), elongation = length - 1,
	// contribution = -elongation * 0.1 / length
	want := -0.00198512
	if math.Abs(f.At(1, 1)-want) > 1e-7 {
		t.Errorf("center force = %g, want %g", f.At(1, 1), want)
	}
	if f.At(1, 1) >= 0 {
		t.Error("restoring force must oppose the displacement")
	}
}

func TestForces_Pure(t *testing.T) {
	p := Params{Elastic: 2, NaturalLength: 0.5, Separation: 1}
	pos := mesh.New(5, 5)
	pos.Set(2, 2, 1.5)
	before := pos.Clone()

	f1 := Forces(pos, p)
	f2 := Forces(pos, p)

	if !pos.Equal(before, 0) {
		t.Error("Forces must not modify its input")
	}
	if !f1.Equal(f2, 0) {
		t.Error("Forces must be deterministic")
	}
}

func TestForces_ParallelMatchesSerial(t *testing.T) {
	p := Params{Elastic: 12, NaturalLength: 0.05, Separation: 0.1}
	rng := rand.New(rand.NewSource(7))

	// 80x80 interior exceeds the parallel threshold
	pos := mesh.New(80, 80)
	for i := range pos.Data {
		pos.Data[i] = rng.Float64()*2 - 1
	}

	parallel := Forces(pos, p)

	serial := mesh.New(pos.Ny, pos.Nx)
	forcesRange(pos, serial, p, 1, pos.Ny-1)

	if !parallel.Equal(serial, 0) {
		t.Error("parallel and serial force fields must be identical")
	}
}

func TestForces_TinyGrid(t *testing.T) {
	p := Params{Elastic: 1, NaturalLength: 1, Separation: 1}
	pos := mesh.New(2, 2)
	pos.Fill(1)

	f := Forces(pos, p)
	for i, v := range f.Data {
		if v != 0 {
			t.Errorf("grid without interior must produce zero forces, got %g at %d", v, i)
		}
	}
}
