package mesh

import (
	"fmt"
	"math"
)

// Grid is a rectangular ny×nx field of float64 values stored row-major.
// Element (i, j) is row i, column j.
type Grid struct {
	Ny, Nx int
	Data   []float64
}

func New(ny, nx int) *Grid {
	return &Grid{Ny: ny, Nx: nx, Data: make([]float64, ny*nx)}
}

func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("mesh: empty grid")
	}
	g := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != g.Nx {
			return nil, fmt.Errorf("mesh: ragged grid: row %d has %d columns, want %d", i, len(row), g.Nx)
		}
		copy(g.Data[i*g.Nx:], row)
	}
	return g, nil
}

func (g *Grid) At(i, j int) float64     { return g.Data[i*g.Nx+j] }
func (g *Grid) Set(i, j int, v float64) { g.Data[i*g.Nx+j] = v }

func (g *Grid) Clone() *Grid {
	c := New(g.Ny, g.Nx)
	copy(c.Data, g.Data)
	return c
}

func (g *Grid) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// Scaled returns a new grid with every value multiplied by factor.
func (g *Grid) Scaled(factor float64) *Grid {
	c := New(g.Ny, g.Nx)
	for i, v := range g.Data {
		c.Data[i] = v * factor
	}
	return c
}

// Round rounds every value in place to the given number of decimal digits.
func (g *Grid) Round(decimals int) {
	p := math.Pow(10, float64(decimals))
	for i, v := range g.Data {
		g.Data[i] = math.Round(v*p) / p
	}
}

func (g *Grid) MaxAbs() float64 {
	m := 0.0
	for _, v := range g.Data {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (g *Grid) IsValid() bool {
	for _, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (g *Grid) Equal(o *Grid, tol float64) bool {
	if o == nil || g.Ny != o.Ny || g.Nx != o.Nx {
		return false
	}
	for i := range g.Data {
		if math.Abs(g.Data[i]-o.Data[i]) > tol {
			return false
		}
	}
	return true
}

// Rows copies the grid into a [][]float64, one slice per row.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.Ny)
	for i := 0; i < g.Ny; i++ {
		rows[i] = make([]float64, g.Nx)
		copy(rows[i], g.Data[i*g.Nx:(i+1)*g.Nx])
	}
	return rows
}

func SameShape(a, b *Grid) bool {
	return a != nil && b != nil && a.Ny == b.Ny && a.Nx == b.Nx
}
