package config

import "math"

// Presets are ready-to-run configurations with generated grids, for quick
// experiments without drawing PNG inputs.
var Presets = map[string]func() *Config{
	"center-drop":   centerDrop,
	"standing-wave": standingWave,
	"drum":          drum,
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// centerDrop releases a small square patch at the middle of a pinned-border
// mesh.
func centerDrop() *Config {
	const n = 21
	cfg := DefaultConfig()
	cfg.Name = "center-drop"
	cfg.Grids.Mass = uniformRows(n, n, 1)
	cfg.Grids.Dynamic = interiorRows(n, n)
	amp := zeroRows(n, n)
	c := n / 2
	for i := c - 1; i <= c+1; i++ {
		for j := c - 1; j <= c+1; j++ {
			amp[i][j] = 1
		}
	}
	cfg.Grids.Amplitude = amp
	return cfg
}

// standingWave starts from the fundamental mode of the pinned mesh.
func standingWave() *Config {
	const n = 25
	cfg := DefaultConfig()
	cfg.Name = "standing-wave"
	cfg.Grids.Mass = uniformRows(n, n, 1)
	cfg.Grids.Dynamic = interiorRows(n, n)
	amp := zeroRows(n, n)
	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			amp[i][j] = math.Sin(math.Pi*float64(i)/float64(n-1)) *
				math.Sin(math.Pi*float64(j)/float64(n-1))
		}
	}
	cfg.Grids.Amplitude = amp
	return cfg
}

// drum pins everything outside a circular membrane and drops its center.
func drum() *Config {
	const n = 31
	cfg := DefaultConfig()
	cfg.Name = "drum"
	cfg.Grids.Mass = uniformRows(n, n, 1)

	c := float64(n-1) / 2
	radius := c - 1
	dyn := make([][]int, n)
	amp := zeroRows(n, n)
	for i := 0; i < n; i++ {
		dyn[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == 0 || i == n-1 || j == 0 || j == n-1 {
				continue
			}
			di, dj := float64(i)-c, float64(j)-c
			r := math.Sqrt(di*di + dj*dj)
			if r < radius {
				dyn[i][j] = 1
				amp[i][j] = math.Max(0, 1-r/3)
			}
		}
	}
	cfg.Grids.Dynamic = dyn
	cfg.Grids.Amplitude = amp
	return cfg
}

func uniformRows(ny, nx int, v float64) [][]float64 {
	rows := make([][]float64, ny)
	for i := range rows {
		rows[i] = make([]float64, nx)
		for j := range rows[i] {
			rows[i][j] = v
		}
	}
	return rows
}

func zeroRows(ny, nx int) [][]float64 {
	rows := make([][]float64, ny)
	for i := range rows {
		rows[i] = make([]float64, nx)
	}
	return rows
}

func interiorRows(ny, nx int) [][]int {
	rows := make([][]int, ny)
	for i := range rows {
		rows[i] = make([]int, nx)
		if i == 0 || i == ny-1 {
			continue
		}
		for j := 1; j < nx-1; j++ {
			rows[i][j] = 1
		}
	}
	return rows
}
