package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/verletsim/internal/automation"
	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/experiment"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/viz"
)

var (
	dataDir string
	verbose bool
	// Simulation settings
	frames    int
	substeps  int
	gravityX  float64
	gravityY  float64
	stiffness float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Substep counts compared by run --sweep
	sweep []int
	// Output path for render
	outFile    string
	fromRun    string
	pointSize  float64
	scale      float64
	noStress   bool
	settle     float64
	metricName string
	// Parameter sweep
	paramName  string
	paramMin   float64
	paramMax   float64
	paramSteps int

	log = slog.New(slog.DiscardHandler)
)

// main registers commands and flags, opens the scene picker when no
// subcommand is given, and exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "verletsim",
		Short: "verlet point and edge sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd, "")
			if err != nil {
				return err
			}
			return viz.RunInteractive(*cfg, scene.NewRegistry(), log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verletsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	addSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntSliceVar(&sweep, "sweep", nil, "compare these substep counts instead of saving a run")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "open the interactive sandbox on a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "render a scene, or a stored run, to PNG or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderScene,
	}
	addSimFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file, .png or .svg (default <scene>.png)")
	renderCmd.Flags().StringVar(&fromRun, "run", "", "render the final snapshot of a stored run")
	renderCmd.Flags().Float64Var(&pointSize, "point-size", 4, "point radius in pixels")
	renderCmd.Flags().Float64Var(&scale, "scale", 1, "output scale factor")
	renderCmd.Flags().BoolVar(&noStress, "no-stress", false, "draw all edges white")
	renderCmd.Flags().Float64Var(&settle, "settle", 0, "stop early once kinetic energy stays below this value")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene across substep counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSimFlags(benchCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "sweep one setting and compare stress and stability",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParamSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&paramName, "param", "stiffness", "setting to vary: stiffness, gravity_x, gravity_y or substeps")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&paramSteps, "steps", 5, "number of values")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run metrics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, renderCmd, listCmd, plotCmd, benchCmd, scenarioCmd, sweepCmd, exportCSVCmd, exportJSONCmd, scenesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "sub-steps per frame")
	cmd.Flags().Float64Var(&gravityX, "gravity-x", 0, "horizontal gravity")
	cmd.Flags().Float64Var(&gravityY, "gravity-y", config.DefaultGravityY, "vertical gravity")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring stiffness in (0, 1]")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if verbose {
		physics.SetLogger(log.With("component", "physics"))
		gg.SetLogger(log.With("component", "gg"))
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. A scene argument wins over all of them.
func resolveConfig(cmd *cobra.Command, sceneName string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	if sceneName != "" {
		cfg.Scene = sceneName
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scene, preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scene))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if sceneName != "" {
		cfg.Scene = sceneName
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("substeps") {
		cfg.Substeps = substeps
	}
	if flags.Changed("gravity-x") {
		cfg.Gravity.X = gravityX
	}
	if flags.Changed("gravity-y") {
		cfg.Gravity.Y = gravityY
	}
	if flags.Changed("stiffness") {
		cfg.Stiffness = stiffness
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	log.Debug("config resolved", "scene", cfg.Scene, "preset", preset, "substeps", cfg.Substeps, "frames", cfg.Frames)
	return cfg, preset, nil
}

func sceneArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, presetName, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return err
	}
	registry := scene.NewRegistry()

	ctx, cancel := signalContext()
	defer cancel()

	if len(sweep) > 0 {
		return runSweep(ctx, cfg, registry)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, registry).WithPreset(presetName)
	if err := exp.Setup(); err != nil {
		return err
	}
	exp.Runner().AddObserver(sim.NewProgressLog(log, cfg.Frames))

	fmt.Printf("running %s for %d frames...\n", cfg.Scene, cfg.Frames)
	start := time.Now()

	result, err := exp.Run(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		log.Warn("run interrupted, saving partial result", "frames", result.FramesRun, "err", err)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesRun)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runSweep(ctx context.Context, cfg *config.Config, registry *scene.Registry) error {
	fmt.Printf("sweeping %s over substeps %v\n\n", cfg.Scene, sweep)
	results, err := experiment.Sweep(ctx, cfg, registry, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBSTEPS\tFRAMES\tMAX_STRESS\tSTABILITY\tENERGY\tERRORS")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.3f\t%.4f\t%d\n",
			sweep[i],
			r.FramesRun,
			r.Metrics["max_stress"],
			r.Metrics["stability"],
			r.Metrics["kinetic_energy"],
			len(r.Errors),
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return err
	}
	return viz.Run(*cfg, scene.NewRegistry(), log)
}

func renderScene(cmd *cobra.Command, args []string) error {
	opts := render.DefaultOptions()
	opts.PointSize = pointSize
	opts.Scale = scale
	opts.ShowStress = !noStress

	var snap *sim.Snapshot
	name := fromRun
	if fromRun != "" {
		s, err := storage.New(dataDir).LoadSnapshot(fromRun)
		if err != nil {
			return err
		}
		snap = s
	} else {
		cfg, _, err := resolveConfig(cmd, sceneArg(args))
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, scene.NewRegistry())
		if err := exp.Setup(); err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()
		if settle > 0 {
			s, err := exp.Settle(ctx, settle)
			if err != nil {
				return err
			}
			snap = s
		} else {
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			snap = result.Snapshot
		}
		name = cfg.Scene
	}

	out := outFile
	if out == "" {
		out = name + ".png"
	}

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".png":
		if err := render.SavePNG(out, snap, opts); err != nil {
			return err
		}
	case ".svg":
		if err := os.WriteFile(out, []byte(render.SVG(snap, opts)), 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", ext)
	}

	fmt.Printf("wrote %s (frame %d, %d points, %d edges)\n", out, snap.Frame, len(snap.Points), len(snap.Edges))
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
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tFRAMES\tSUBSTEPS\tPOINTS\tEDGES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FramesRun,
			run.Frames,
			run.Substeps,
			run.Points,
			run.Edges,
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

	series, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(series.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("frames: %d\n\n", len(series.Frames))

	names := series.Names
	if metricName != "" {
		if _, ok := series.Values[metricName]; !ok {
			return fmt.Errorf("unknown metric %q (available: %v)", metricName, series.Names)
		}
		names = []string{metricName}
	}

	for _, name := range names {
		graph := asciigraph.Plot(series.Values[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return err
	}
	registry := scene.NewRegistry()

	fmt.Printf("benchmarking %s over %d frames\n\n", cfg.Scene, cfg.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBSTEPS\tFRAMES\tTIME\tFRAMES/SEC\tMAX_STRESS")

	for _, n := range []int{1, 4, 8, 16, 32, 64} {
		c := *cfg
		c.Substeps = n
		exp := experiment.New(&c, registry)
		if err := exp.Setup(); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.4f\n",
			n, result.FramesRun, elapsed, float64(result.FramesRun)/elapsed.Seconds(), result.Metrics["max_stress"])
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, scene.NewRegistry(), storage.New(dataDir), log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tFRAMES\tMAX_STRESS\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%s\n", r.Step, r.Scene, r.Result.FramesRun, r.Result.Metrics["max_stress"], r.RunID)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func runParamSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      *cfg,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  paramSteps,
	}, scene.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tMAX_STRESS\tSTABILITY\tERRORS\n", strings.ToUpper(paramName))
	stress := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%.4f\t%.3f\t%d\n", r.ParamValue, r.FramesRun, r.MaxStress, r.Stability, r.Errors)
		stress = append(stress, r.MaxStress)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stress) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(stress, asciigraph.Height(8), asciigraph.Caption("max stress by "+paramName)))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(series.Frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"frame"}, series.Names...)); err != nil {
		return err
	}

	for i, frame := range series.Frames {
		row := []string{strconv.Itoa(frame)}
		for _, name := range series.Names {
			row = append(row, strconv.FormatFloat(series.Values[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, data)
}
