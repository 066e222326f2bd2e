package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/meshwave/internal/mesh"
	"github.com/san-kum/meshwave/internal/physics"
	"github.com/san-kum/meshwave/internal/sim"
	"github.com/san-kum/meshwave/internal/trajectory"
)

func sampleTrajectory() *trajectory.Sampled {
	f0 := mesh.New(2, 3)
	f1 := mesh.New(2, 3)
	f0.Set(0, 1, 0.5)
	f1.Set(1, 2, -0.25)
	return &trajectory.Sampled{
		Times:  []float64{0, 0.0333},
		Frames: []*mesh.Grid{f0, f1},
	}
}

func testParams() physics.Params {
	return physics.Params{Elastic: 40, NaturalLength: 0.05, Separation: 0.1}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.DefaultConfig()
	metrics := map[string]float64{"energy_drift": 0.001}

	runID, err := st.Save("trip", testParams(), cfg, sampleTrajectory(), metrics)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "trip_") {
		t.Errorf("run id should carry the run name, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "trip" || meta.Ny != 2 || meta.Nx != 3 || meta.Frames != 2 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Elastic != 40 || meta.Metrics["energy_drift"] != 0.001 {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if frames.Shape != [3]int{2, 2, 3} {
		t.Errorf("shape = %v, want [2 2 3]", frames.Shape)
	}
	if frames.Frames[0][0][1] != 0.5 || frames.Frames[1][1][2] != -0.25 {
		t.Error("frame values lost in round trip")
	}
	if len(frames.Times) != 2 || frames.Times[1] != 0.0333 {
		t.Errorf("times lost in round trip: %v", frames.Times)
	}
}

func TestSave_RunDirLayout(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("layout", testParams(), sim.DefaultConfig(), sampleTrajectory(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "time.csv", "frames.json"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// No temp dirs may survive a completed save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp dir %s", e.Name())
		}
	}
}

func TestSave_TimeCSV(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("csv", testParams(), sim.DefaultConfig(), sampleTrajectory(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, runID, "time.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "frame" || rows[0][1] != "time" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "0" || rows[1][1] != "0" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "1" || rows[2][1] != "0.0333" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestSave_EmptyTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	empty := &trajectory.Sampled{}
	runID, err := st.Save("empty", testParams(), sim.DefaultConfig(), empty, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Frames != 0 || meta.Ny != 0 || meta.Nx != 0 {
		t.Errorf("expected empty metadata, got %+v", meta)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatal(err)
	}
	if frames.Shape != [3]int{0, 0, 0} || len(frames.Frames) != 0 {
		t.Errorf("expected empty frame data, got %+v", frames)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store should list no runs, got %d", len(runs))
	}

	if _, err := st.Save("a", testParams(), sim.DefaultConfig(), sampleTrajectory(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("b", testParams(), sim.DefaultConfig(), sampleTrajectory(), nil); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestList_MissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoad_UnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing_123"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestExportCSV(t *testing.T) {
	data := &FrameData{
		Shape: [3]int{2, 2, 2},
		Times: []float64{0, 0.5},
		Frames: [][][]float64{
			{{0, 0.1}, {0.2, 0.3}},
			{{0, -0.1}, {-0.2, -0.3}},
		},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, data); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"time", "z0_0", "z0_1", "z1_0", "z1_1"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][2] != "0.1" || rows[2][4] != "-0.3" {
		t.Errorf("unexpected data rows: %v / %v", rows[1], rows[2])
	}
}
