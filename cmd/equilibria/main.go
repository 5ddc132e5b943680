package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/config"
)

var (
	configFile string
	verbose    bool
	logFile    string
	logger     = zap.NewNop()

	reaction    string
	preset      string
	seed        int64
	particles   int
	ticks       int
	fps         int
	temperature float64
	pressure    float64
	reactant    float64
	product     float64

	runs     int
	csvOut   string
	jsonOut  string
	theme    string
	addr     string
	view     string
	outFile  string
	imgSize  int
	control  string
	sweepMin float64
	sweepMax float64
	steps    int
	target   float64
	grid     []string
)

// main registers the equilibria commands and runs the TUI when no
// subcommand is given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "equilibria",
		Short:         "Le Chatelier equilibrium lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLogger(verbose, logFile)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	simFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", "lab", "colour theme")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive reactor view",
		RunE:  runTUI,
	}
	simFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", "lab", "colour theme")

	shiftCmd := &cobra.Command{
		Use:   "shift",
		Short: "evaluate the equilibrium shift for the given conditions",
		RunE:  runShift,
	}
	simFlags(shiftCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the particle simulation headless",
		RunE:  runHeadless,
	}
	simFlags(runCmd)
	runCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the per-tick trace as CSV")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the run as JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one control and tabulate the shift",
		RunE:  runSweep,
	}
	simFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&control, "control", "temperature", "control to sweep (temperature, pressure, reactant, product)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "start value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 100, "end value")
	sweepCmd.Flags().IntVar(&steps, "steps", 11, "number of samples")
	sweepCmd.Flags().StringVar(&csvOut, "csv", "", "write the sweep as CSV")
	sweepCmd.Flags().StringVar(&jsonOut, "json", "", "write the sweep as JSON")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search the controls for a target shift",
		RunE:  runSearch,
	}
	simFlags(searchCmd)
	searchCmd.Flags().Float64Var(&target, "target", 0, "shift to aim for")
	searchCmd.Flags().StringArrayVar(&grid, "grid", nil, "control=min:max:n, repeatable")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&csvOut, "csv", "", "write the trace as CSV")
	scenarioCmd.Flags().StringVar(&jsonOut, "json", "", "write the result as JSON")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write an SVG of the chamber",
		RunE:  runSnapshot,
	}
	simFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&view, "view", "side", "side or top")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().IntVar(&imgSize, "size", 480, "image width and height in pixels")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulation over HTTP and WebSocket",
		RunE:  runServe,
	}
	simFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets [reaction]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				for _, rt := range chem.ReactionTypes() {
					names = append(names, rt.String())
				}
			}
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Printf("no presets for reaction: %s\n", name)
					continue
				}
				fmt.Printf("presets for %s:\n", name)
				for _, p := range presets {
					fmt.Printf("  %-12s %s\n", p, presetDescription(name, p))
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, shiftCmd, runCmd, sweepCmd, searchCmd, scenarioCmd, snapshotCmd, serveCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func simFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&reaction, "reaction", "r", "exothermic", "reaction type (exothermic, endothermic, gas, dissolution)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed (0 seeds from the clock)")
	f.IntVar(&particles, "particles", 200, "particle count")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	f.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	f.Float64VarP(&temperature, "temperature", "t", chem.BaselineTemperature, "temperature in °C")
	f.Float64VarP(&pressure, "pressure", "p", chem.BaselinePressure, "pressure in atm")
	f.Float64Var(&reactant, "reactant", 50, "reactant concentration in %")
	f.Float64Var(&product, "product", 50, "product concentration in %")
}

func buildLogger(verbose bool, path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// resolveConfig layers the config file, the preset and the explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("reaction") {
		rt, err := chem.ParseReactionType(reaction)
		if err != nil {
			return nil, err
		}
		cfg.SetReaction(rt)
		cfg.Controls.Temperature, cfg.Controls.Pressure = chem.BaselineTemperature, chem.BaselinePressure
	}
	if preset != "" {
		p := config.GetPreset(cfg.Reaction, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Reaction))
		}
		cfg.Controls = p.Controls
	}

	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("temperature") {
		cfg.Controls.Temperature = temperature
	}
	if flags.Changed("pressure") {
		cfg.Controls.Pressure = pressure
	}
	if flags.Changed("reactant") {
		cfg.Controls.ReactantConc = reactant
	}
	if flags.Changed("product") {
		cfg.Controls.ProductConc = product
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func presetDescription(reaction, name string) string {
	rt, err := chem.ParseReactionType(reaction)
	if err != nil {
		return ""
	}
	return config.Presets[rt.String()][name].Description
}
