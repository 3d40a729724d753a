package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bounce/internal/analysis"
	"github.com/san-kum/bounce/internal/audio"
	"github.com/san-kum/bounce/internal/automation"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/export"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/optim"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
	"github.com/san-kum/bounce/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	ticks       int
	recordEvery int
	seed        int64
	policy      string
	gravity     float64
	tickRate    int
	metricNames []string
	numRuns     int
	outFile     string
	braille     bool
	sweepParams []string
	sweepMetric string
	maximize    bool
	jitter      float64
	bodyID      int
	xAxis       string
	yAxis       string
	sound       bool
	theme       string
)

const maxPlots = 6

func main() {
	rootCmd := &cobra.Command{
		Use:   "bounce",
		Short: "bouncing bodies in a box",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bounce", "data directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		viz.SetTheme(theme)
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default all)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().BoolVar(&sound, "sound", false, "play a ping on every bounce")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in a graphical window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)
	guiCmd.Flags().BoolVar(&sound, "sound", false, "play a ping on every bounce")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body heights and kinetic energy",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the last frame as braille dots")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scene config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	sceneFlags(initCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the scene under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  benchScene,
	}
	sceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "list available metrics",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListMetrics() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search scene parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  sweepScene,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_loss", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted batch of scenes and store each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check containment under perturbed initial velocities",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	sceneFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&numRuns, "runs", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&jitter, "jitter", 1.0, "max velocity perturbation per axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyID, "body", 1, "body id")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyID, "body", 1, "body id")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "y", "field for x-axis (x, y, dx, dy, speed)")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "dy", "field for y-axis (x, y, dx, dy, speed)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initCmd, benchCmd, metricsCmd, sweepCmd, scriptCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "pair", "use preset configuration")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record a frame every n ticks")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&policy, "policy", "snapshot", "collision policy (snapshot, sequential)")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "downward speed change per tick")
	cmd.Flags().IntVar(&tickRate, "tick-rate", config.DefaultTickRate, "ticks per second in live mode")
}

// loadScene resolves the scene from a config file or a preset, then applies
// the flags the user set explicitly.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("gravity") {
		cfg.World.Gravity = gravity
	}
	if flags.Changed("tick-rate") {
		cfg.World.TickRate = tickRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	ms, err := registry.Metrics(metricNames, cfg.World)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(ms); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d ticks...\n", cfg.Name, cfg.Ticks)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d ticks\n", result.TicksTaken)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{
		Name:   cfg.Name,
		Seed:   cfg.Seed,
		World:  cfg.World,
		Policy: cfg.SimPolicy().String(),
		Ticks:  result.TicksTaken,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

// interactiveSim builds the simulator shared by the live and gui commands.
// The returned stop func releases the audio stream when --sound is set.
func interactiveSim(cfg *config.Config) (*sim.Simulator, func(), error) {
	s := sim.New(cfg.World, cfg.SimPolicy())
	if !sound {
		return s, func() {}, nil
	}
	p := audio.NewProcessor(cfg.World)
	if err := p.Start(); err != nil {
		return nil, nil, err
	}
	s.AddObserver(p)
	return s, p.Stop, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	s, stop, err := interactiveSim(cfg)
	if err != nil {
		return err
	}
	defer stop()
	return viz.Run(s, func() ([]physics.Body, error) { return cfg.Build(cfg.Seed) }, cfg.Name)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	s, stop, err := interactiveSim(cfg)
	if err != nil {
		return err
	}
	defer stop()
	return gui.Run(s, func() ([]physics.Body, error) { return cfg.Build(cfg.Seed) }, cfg.Name)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTICKS\tBODIES\tPOLICY\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Bodies,
			run.Policy,
			run.Seed,
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

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	heights := make(map[physics.ID][]float64)
	var ids []physics.ID
	energy := make([]float64, len(frames))
	for i, f := range frames {
		for _, b := range f.Bodies {
			if _, ok := heights[b.ID]; !ok {
				ids = append(ids, b.ID)
			}
			heights[b.ID] = append(heights[b.ID], b.Center.Y)
		}
		energy[i] = metrics.Kinetic(f.Bodies)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for i, id := range ids {
		if i == maxPlots {
			fmt.Printf("... %d more bodies\n\n", len(ids)-maxPlots)
			break
		}
		graph := asciigraph.Plot(heights[id],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d height", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.WriteJSON(os.Stdout, *meta, frames)
	}
	if err := storage.ExportJSON(outFile, *meta, frames); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames in run %s", runID)
	}

	var svg string
	if braille {
		canvas := viz.NewCanvas(80, 40)
		viz.DrawArena(canvas, meta.World, frames[len(frames)-1].Bodies)
		svg = export.CanvasToSVG(canvas, 4)
	} else {
		svg = export.TrajectoriesToSVG(frames, meta.World)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tTICKS\tPOLICY\tGRAVITY")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%g\n",
			name,
			len(p.Bodies)+p.Random.Count,
			p.Ticks,
			p.SimPolicy(),
			p.World.Gravity,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %s: %d runs x %d ticks\n\n", cfg.Name, numRuns, cfg.Ticks)

	registry := experiment.NewRegistry()
	start := time.Now()
	results, err := experiment.New(cfg).Ensemble(ctx, numRuns, registry)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	names := []string{"kinetic_energy", "peak_speed", "containment", "max_overshoot"}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\t"+strings.ToUpper(strings.Join(names, "\t")))

	total := 0
	for i, r := range results {
		total += r.TicksTaken
		row := []string{fmt.Sprintf("%d", cfg.Seed+int64(i)), fmt.Sprintf("%d", r.TicksTaken)}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[name]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntime: %v\n", elapsed)
	fmt.Printf("ticks/sec: %.0f\n", float64(total)/elapsed.Seconds())
	return nil
}

// parseParam reads "name=v1,v2,...".
func parseParam(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2", arg)
	}
	var values []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("no --param given (available: %v)", optim.SceneParams())
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, arg := range sweepParams {
		name, values, err := parseParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	g := optim.NewGridSearch(names, ranges)
	if maximize {
		g.Maximize()
	}

	build := optim.SceneBuilder(cfg, experiment.NewRegistry(), []string{sweepMetric})
	best, all, err := g.Search(context.Background(), build, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, p := range all {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, fmt.Sprintf("%g", p.Params[name]))
		}
		row = append(row, fmt.Sprintf("%.6f", p.Value))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v -> %.6f\n", best.Params, best.Value)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s\n", scenario.Name)
	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), st)
	for _, r := range results {
		fmt.Printf("  %s -> %s (%d ticks)\n", r.Name, r.RunID, r.Result.TicksTaken)
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: jitter,
		NumTrials:    numRuns,
		Seed:         cfg.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	contained, escaped := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		if r.Overshoot > worst {
			worst = r.Overshoot
		}
	}
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("contained: %d\n", contained)
	fmt.Printf("escaped: %d\n", escaped)
	fmt.Printf("worst overshoot: %.4f\n", worst)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	ticks, ys, err := analysis.Series(frames, physics.ID(bodyID), "y")
	if err != nil {
		return err
	}
	_, dys, err := analysis.Series(frames, physics.ID(bodyID), "dy")
	if err != nil {
		return err
	}
	if len(ys) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("body: %d\n\n", bodyID)

	ps := analysis.PowerSpectrum(ys)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (height)"),
	)
	fmt.Println(graph)
	fmt.Println()

	// samples are evenly spaced except possibly the last frame
	spacing := float64(ticks[1] - ticks[0])
	period, _ := analysis.DominantPeriod(ys)
	if period > 0 {
		periodTicks := period * spacing
		fmt.Printf("dominant period: %.1f ticks\n", periodTicks)
		fmt.Printf("period: %.3f s\n", periodTicks/float64(meta.World.TickRate))
	} else {
		fmt.Println("no dominant period")
	}
	fmt.Printf("rebounds: %d\n", len(analysis.Rebounds(dys)))

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	portrait, err := analysis.GeneratePhasePortrait(frames, physics.ID(bodyID), xAxis, yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: body %d, %s vs %s\n\n", bodyID, yAxis, xAxis)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 80, 24))
	return nil
}
