package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/meshwave/internal/config"
	"github.com/san-kum/meshwave/internal/metrics"
	"github.com/san-kum/meshwave/internal/sim"
	"github.com/san-kum/meshwave/internal/storage"
	"github.com/san-kum/meshwave/internal/trajectory"
	"github.com/san-kum/meshwave/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	fps        int
	decimals   int
	// plot cell indices
	cellI int
	cellJ int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "meshwave",
		Short: "transverse dynamics of a spring mesh",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".meshwave", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and export the trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "center-drop", "preset configuration")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "output frame rate")
	runCmd.Flags().IntVar(&decimals, "decimals", config.DefaultDecimals, "output rounding precision")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one cell's displacement over the exported frames",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&cellI, "i", -1, "cell row (default: center)")
	plotCmd.Flags().IntVar(&cellJ, "j", -1, "cell column (default: center)")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "play back a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, viewCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// CLI flags override the file or preset.
	if cmd.Flags().Changed("dt") {
		cfg.Physics.Timestep = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Physics.Steps = steps
	}
	if cmd.Flags().Changed("fps") {
		cfg.Output.FPS = fps
	}
	if cmd.Flags().Changed("decimals") {
		cfg.Output.Decimals = decimals
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	mass, initial, dynamic, err := cfg.BuildInputs()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	params := cfg.Params()
	simulator := sim.New(params, mass, dynamic)
	simulator.AddMetric(metrics.NewEnergyDrift(params, mass, dynamic))
	simulator.AddMetric(metrics.NewStability(100 * initial.MaxAbs()))
	simulator.AddMetric(metrics.NewPinViolation(dynamic))

	fmt.Printf("running %s (%dx%d mesh, %d steps)...\n", cfg.Name, initial.Ny, initial.Nx, cfg.Physics.Steps)
	start := time.Now()

	result, err := simulator.Run(context.Background(), initial, cfg.SimConfig())
	if err != nil {
		return err
	}

	sampled := trajectory.Sample(result, cfg.Output.FPS, cfg.Output.Decimals)

	runID, err := st.Save(cfg.Name, params, cfg.SimConfig(), sampled, result.Metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, exported frames: %d\n", len(result.Times), len(sampled.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMESH\tSTEPS\tDT\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.4gs\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ny,
			run.Nx,
			run.Steps,
			run.Dt,
			run.Frames,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	i, j := cellI, cellJ
	if i < 0 {
		i = meta.Ny / 2
	}
	if j < 0 {
		j = meta.Nx / 2
	}
	if i >= meta.Ny || j >= meta.Nx {
		return fmt.Errorf("cell (%d,%d) outside %dx%d mesh", i, j, meta.Ny, meta.Nx)
	}

	series := make([]float64, len(data.Frames))
	for k, frame := range data.Frames {
		series[k] = frame[i][j]
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(series))

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("displacement of cell (%d,%d)", i, j)),
	)
	fmt.Println(graph)

	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(meta, data))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, data)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	data, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, data)
}
