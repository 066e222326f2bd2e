package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ExportData bundles run metadata with the stored trajectory for a single
// self-contained JSON document.
type ExportData struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Dt            float64            `json:"dt"`
	Steps         int                `json:"steps"`
	FPS           int                `json:"fps"`
	Shape         [3]int             `json:"shape"`
	Times         []float64          `json:"times"`
	Frames        [][][]float64      `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
	Elastic       float64            `json:"elastic_constant"`
	NaturalLength float64            `json:"natural_length"`
	Separation    float64            `json:"particle_separation"`
}

func ExportJSONStdout(meta *RunMetadata, data *FrameData) error {
	out := ExportData{
		ID:            meta.ID,
		Name:          meta.Name,
		Dt:            meta.Dt,
		Steps:         meta.Steps,
		FPS:           meta.FPS,
		Shape:         data.Shape,
		Times:         data.Times,
		Frames:        data.Frames,
		Metrics:       meta.Metrics,
		Elastic:       meta.Elastic,
		NaturalLength: meta.NaturalLength,
		Separation:    meta.Separation,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportCSV writes one row per frame: the time followed by every cell in
// row-major order, columns named z<i>_<j>.
func ExportCSV(w io.Writer, data *FrameData) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for i := 0; i < data.Shape[1]; i++ {
		for j := 0; j < data.Shape[2]; j++ {
			header = append(header, fmt.Sprintf("z%d_%d", i, j))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for k, frame := range data.Frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(data.Times[k], 'f', -1, 64))
		for _, cells := range frame {
			for _, v := range cells {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
