package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	dataDir     string
	configFile  string
	preset      string
	frameRate   int
	timeScale   float64
	pixelsPerAU float64
	ordering    string
	minDistance float64
	steps       int
	track       string
	save        bool
	svgOut      string
	plotOut     string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:          "orbitsim",
		Short:        "2D gravitational n-body simulator",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "inner", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "simulated seconds per frame")
	rootCmd.PersistentFlags().Float64Var(&pixelsPerAU, "ppau", config.DefaultPixelsPerAU, "pixels per astronomical unit")
	rootCmd.PersistentFlags().StringVar(&ordering, "ordering", "snapshot", "force ordering (snapshot, sequential)")
	rootCmd.PersistentFlags().Float64Var(&minDistance, "min-distance", 0, "clamp separations below this many meters (0 disables)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cmd.Context(), cfg)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&steps, "steps", 365, "number of steps")
	runCmd.Flags().StringVar(&track, "track", "", "body whose distance to the anchor is plotted")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run report to the data directory")

	exportCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run headless and write the traced orbits as SVG",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	exportCmd.Flags().IntVar(&steps, "steps", 365, "number of steps")
	exportCmd.Flags().StringVarP(&svgOut, "out", "o", "orbits.svg", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body]",
		Short: "plot a saved body's distance to the anchor",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "", "write the plot as SVG instead of printing it")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return config.Write(os.Stdout, cfg)
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("saved config to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, exportCmd, listCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

// loadConfig applies the preset, then the config file, then any flag set on
// the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("ppau") {
		cfg.PixelsPerAU = pixelsPerAU
		cfg.Scale = 0
	}
	if flags.Changed("ordering") {
		cfg.Ordering = ordering
	}
	if flags.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), cfg)
}

// distanceTrace records one body's distance to the anchor after every step.
type distanceTrace struct {
	body   *physics.Body
	values []float64
}

func (d *distanceTrace) OnStep(bodies []*physics.Body, t float64) {
	d.values = append(d.values, d.body.DistanceToAnchor/physics.AU)
}

func simulate(ctx context.Context, cfg *config.Config, n int) ([]*physics.Body, *sim.Result, *distanceTrace, error) {
	bodies, err := cfg.Build()
	if err != nil {
		return nil, nil, nil, err
	}

	sc := cfg.SimConfig()
	s := sim.New(sc)
	for _, m := range metrics.Defaults(bodies, sc.Gravity) {
		s.AddMetric(m)
	}

	trace, err := traceFor(bodies, track)
	if err != nil {
		return nil, nil, nil, err
	}
	if trace != nil {
		s.AddObserver(trace)
	}

	result, err := s.Run(ctx, bodies, n)
	return bodies, result, trace, err
}

func traceFor(bodies []*physics.Body, name string) (*distanceTrace, error) {
	if physics.Anchor(bodies) == nil {
		return nil, nil
	}
	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		if name == "" || b.Name == name {
			return &distanceTrace{body: b}, nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("unknown body: %s", name)
	}
	return nil, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running %s for %d steps...\n", cfg.Name, steps)
	start := time.Now()

	bodies, result, trace, err := simulate(cmd.Context(), cfg, steps)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("simulated: %.2f days\n", result.SimTime/86400)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nBODY\tX (AU)\tY (AU)\tSPEED (km/s)\tDISTANCE (AU)")
	for _, b := range bodies {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.3f\t%.4f\n",
			b.Name, b.Pos.X/physics.AU, b.Pos.Y/physics.AU,
			r2.Norm(b.Vel)/1000, b.DistanceToAnchor/physics.AU)
	}
	w.Flush()

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if trace != nil && len(trace.values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.values,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(trace.body.Name+" distance to anchor (AU)")))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, cfg.SimConfig(), bodies, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bodies, result, _, err := simulate(cmd.Context(), cfg, steps)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	sc := cfg.SimConfig()
	svg := export.OrbitsToSVG(bodies, cfg.Projection(), cfg.Window.Width, cfg.Window.Height, sc.Background, sc.RadiusExaggeration)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %d steps to %s\n", result.StepsTaken, svgOut)
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
	fmt.Fprintln(w, "ID\tNAME\tORDERING\tSTEPS\tDAYS\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%s\n",
			r.ID, r.Name, r.Ordering, r.Steps, r.SimTime/86400,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID, body := args[0], args[1]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	anchor := meta.Anchor
	if anchor == "" {
		return fmt.Errorf("run %s has no anchor body", runID)
	}

	distances, err := st.LoadDistances(runID, body, anchor)
	if err != nil {
		return err
	}
	if len(distances) < 2 {
		return fmt.Errorf("run %s has too few steps to plot", runID)
	}
	for i := range distances {
		distances[i] /= physics.AU
	}

	if plotOut != "" {
		svg := export.DistanceSeriesToSVG(distances, 800, 400, "#00ff00")
		if err := os.WriteFile(plotOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotOut)
		return nil
	}

	fmt.Println(asciigraph.Plot(distances,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s distance to %s (AU)", body, anchor))))
	return nil
}
