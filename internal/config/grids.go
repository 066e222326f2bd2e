package config

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/san-kum/meshwave/internal/mesh"
)

// Per-cell inputs can be drawn as grayscale PNGs: one pixel per particle.
// The red channel carries the value. mass.png and amplitude.png map 0..255
// to 0..1; dynamic.png marks a particle dynamic only at full intensity.

func readGridDir(dir string) (*mesh.Grid, *mesh.Grid, *mesh.Mask, error) {
	mass, err := ReadGridPNG(filepath.Join(dir, "mass.png"))
	if err != nil {
		return nil, nil, nil, err
	}
	amp, err := ReadGridPNG(filepath.Join(dir, "amplitude.png"))
	if err != nil {
		return nil, nil, nil, err
	}
	dyn, err := ReadMaskPNG(filepath.Join(dir, "dynamic.png"))
	if err != nil {
		return nil, nil, nil, err
	}
	return mass, amp, dyn, nil
}

func ReadGridPNG(path string) (*mesh.Grid, error) {
	img, err := decodePNG(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	g := mesh.New(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Set(y-b.Min.Y, x-b.Min.X, float64(red8(img, x, y))/255.0)
		}
	}
	return g, nil
}

func ReadMaskPNG(path string) (*mesh.Mask, error) {
	img, err := decodePNG(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	m := mesh.NewMask(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.Set(y-b.Min.Y, x-b.Min.X, red8(img, x, y) == 255)
		}
	}
	return m, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return img, nil
}

func red8(img image.Image, x, y int) uint8 {
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}
