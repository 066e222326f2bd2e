package mesh

import "fmt"

// Mask marks which particles are dynamic. A false cell is pinned: its
// displacement and velocity stay zero for the whole run.
type Mask struct {
	Ny, Nx int
	Data   []bool
}

func NewMask(ny, nx int) *Mask {
	return &Mask{Ny: ny, Nx: nx, Data: make([]bool, ny*nx)}
}

// MaskFromRows builds a mask from 0/1 rows, nonzero meaning dynamic.
func MaskFromRows(rows [][]int) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("mesh: empty mask")
	}
	m := NewMask(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Nx {
			return nil, fmt.Errorf("mesh: ragged mask: row %d has %d columns, want %d", i, len(row), m.Nx)
		}
		for j, v := range row {
			m.Data[i*m.Nx+j] = v != 0
		}
	}
	return m, nil
}

func (m *Mask) At(i, j int) bool     { return m.Data[i*m.Nx+j] }
func (m *Mask) Set(i, j int, v bool) { m.Data[i*m.Nx+j] = v }

func (m *Mask) CountTrue() int {
	n := 0
	for _, v := range m.Data {
		if v {
			n++
		}
	}
	return n
}

func (m *Mask) MatchesShape(g *Grid) bool {
	return m != nil && g != nil && m.Ny == g.Ny && m.Nx == g.Nx
}
