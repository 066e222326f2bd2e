package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellColor maps a displacement to a blue-white-red ramp: full blue at
// -max, white at rest, full red at +max.
func cellColor(v, max float64) string {
	if max == 0 {
		return "#ffffff"
	}
	t := v / max
	if t > 1 {
		t = 1
	} else if t < -1 {
		t = -1
	}
	if t >= 0 {
		c := uint8(math.Round(255 * (1 - t)))
		return fmt.Sprintf("#ff%02x%02x", c, c)
	}
	c := uint8(math.Round(255 * (1 + t)))
	return fmt.Sprintf("#%02x%02xff", c, c)
}

// renderFrame draws one displacement frame as a block of colored cells,
// two terminal columns per particle.
func renderFrame(frame [][]float64, max float64) string {
	var sb strings.Builder
	for _, row := range frame {
		for _, v := range row {
			style := lipgloss.NewStyle().Background(lipgloss.Color(cellColor(v, max)))
			sb.WriteString(style.Render("  "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func maxAbsFrames(frames [][][]float64) float64 {
	m := 0.0
	for _, frame := range frames {
		for _, row := range frame {
			for _, v := range row {
				if a := math.Abs(v); a > m {
					m = a
				}
			}
		}
	}
	return m
}
