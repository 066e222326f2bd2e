package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/meshwave/internal/physics"
	"github.com/san-kum/meshwave/internal/sim"
	"github.com/san-kum/meshwave/internal/trajectory"
)

// Store persists completed runs, one directory per run:
// metadata.json, time.csv (frame index and rounded time) and frames.json
// (the rounded displacement tensor). A run directory appears only after all
// three files are fully written.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Ny            int                `json:"ny"`
	Nx            int                `json:"nx"`
	Dt            float64            `json:"dt"`
	Steps         int                `json:"steps"`
	FPS           int                `json:"fps"`
	Decimals      int                `json:"decimals"`
	Frames        int                `json:"frames"`
	Elastic       float64            `json:"elastic_constant"`
	NaturalLength float64            `json:"natural_length"`
	Separation    float64            `json:"particle_separation"`
	Metrics       map[string]float64 `json:"metrics"`
}

// FrameData is the serialized trajectory: Shape is [frames, ny, nx] and
// Times[k] is the simulated time of Frames[k].
type FrameData struct {
	Shape  [3]int        `json:"shape"`
	Times  []float64     `json:"times"`
	Frames [][][]float64 `json:"frames"`
}

func (s *Store) Save(name string, p physics.Params, cfg sim.Config, sampled *trajectory.Sampled, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	tmpDir := filepath.Join(s.baseDir, "."+runID+".tmp")

	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	ny, nx := 0, 0
	if len(sampled.Frames) > 0 {
		ny, nx = sampled.Frames[0].Ny, sampled.Frames[0].Nx
	}

	meta := RunMetadata{
		ID:            runID,
		Name:          name,
		Timestamp:     time.Now(),
		Ny:            ny,
		Nx:            nx,
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		FPS:           cfg.OutputFPS,
		Decimals:      cfg.Decimals,
		Frames:        len(sampled.Frames),
		Elastic:       p.Elastic,
		NaturalLength: p.NaturalLength,
		Separation:    p.Separation,
		Metrics:       metrics,
	}

	if err := writeJSON(filepath.Join(tmpDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTimeCSV(filepath.Join(tmpDir, "time.csv"), sampled.Times); err != nil {
		return "", err
	}

	data := FrameData{
		Shape: [3]int{len(sampled.Frames), ny, nx},
		Times: sampled.Times,
	}
	data.Frames = make([][][]float64, len(sampled.Frames))
	for i, frame := range sampled.Frames {
		data.Frames[i] = frame.Rows()
	}
	if err := writeJSON(filepath.Join(tmpDir, "frames.json"), data); err != nil {
		return "", err
	}

	if err := os.Rename(tmpDir, runDir); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) (*FrameData, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "frames.json"))
	if err != nil {
		return nil, err
	}

	var frames FrameData
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, err
	}
	return &frames, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTimeCSV(path string, times []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"frame", "time"}); err != nil {
		return err
	}
	for i, t := range times {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(t, 'f', -1, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
