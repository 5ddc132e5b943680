package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/equilibria/internal/automation"
	"github.com/san-kum/equilibria/internal/config"
	"github.com/san-kum/equilibria/internal/export"
	"github.com/san-kum/equilibria/internal/metrics"
	"github.com/san-kum/equilibria/internal/server"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/viz"
)

func runTUI(cmd *cobra.Command, args []string) error {
	// logs go to the file or nowhere; stderr would tear the screen
	tuiLogger := zap.NewNop()
	if logFile != "" {
		tuiLogger = logger
	}
	opts := viz.Options{Theme: theme, Logger: tuiLogger}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts.FPS = cfg.FPS

	direct := configFile != "" || preset != ""
	for _, name := range []string{"reaction", "temperature", "pressure", "reactant", "product"} {
		direct = direct || cmd.Flags().Changed(name)
	}
	if !direct {
		return viz.RunMenu(cfg, opts)
	}

	s, err := cfg.Build(sim.WithLogger(tuiLogger))
	if err != nil {
		return err
	}
	return viz.Run(s, opts)
}

func runShift(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rt, _ := cfg.ReactionType()
	res := cfg.Coefficients.ComputeShift(cfg.Controls, rt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "reaction:\t%s\t%s\n", rt, rt.Equation())
	fmt.Fprintf(w, "conditions:\t%.1f °C, %.2f atm, %.1f%% / %.1f%%\n",
		cfg.Controls.Temperature, cfg.Controls.Pressure, cfg.Controls.ReactantConc, cfg.Controls.ProductConc)
	fmt.Fprintf(w, "shift:\t%+.2f\n", res.Shift)
	fmt.Fprintf(w, "status:\t%s\n", res.Status.Label())
	w.Flush()

	fmt.Printf("\n%s\n", res.Status.Explanation())
	if len(res.Factors) > 0 {
		fmt.Println("\nfactors:")
		for _, f := range res.Factors {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	ctx := cmd.Context()
	if runs > 1 {
		return runEnsemble(ctx, cfg)
	}

	s, err := cfg.Build(sim.WithLogger(logger))
	if err != nil {
		return err
	}
	tracer := sim.NewTracer(cfg.Ticks)
	s.AddObserver(tracer)
	for _, m := range metrics.Standard(s.Chamber(), s.Reaction()) {
		s.AddMetric(m)
	}

	fmt.Printf("running %s for %d ticks...\n", s.Reaction(), cfg.Ticks)
	start := time.Now()
	result, err := s.Run(ctx, cfg.Ticks, nil)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	printSnapshot(result.Final)
	printMetrics(result.Metrics)

	trace := tracer.Points()
	left := tracer.Series(func(p sim.TracePoint) float64 { return p.LeftX })
	right := tracer.Series(func(p sim.TracePoint) float64 { return p.RightX })
	ln, rn := s.Reaction().SpeciesNames()
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{left, right},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("mean x: %ss (blue) vs %ss (red)", ln, rn)),
	))

	if csvOut != "" {
		if err := writeFile(csvOut, func(w io.Writer) error { return export.WriteTraceCSV(w, trace) }); err != nil {
			return err
		}
		fmt.Printf("\ntrace written to %s\n", csvOut)
	}
	if jsonOut != "" {
		data := export.NewRunExport(result.Seed, result, trace)
		if err := writeFile(jsonOut, func(w io.Writer) error { return export.WriteTraceJSON(w, data) }); err != nil {
			return err
		}
		fmt.Printf("run written to %s\n", jsonOut)
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	sc, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	n := cfg.Ticks
	ens := sim.NewEnsemble(sc, runs, cfg.SetupCommands(), func() []sim.Metric {
		return metrics.Standard(sc.Chamber, sc.Reaction)
	})

	fmt.Printf("running %d × %s for %d ticks...\n", runs, sc.Reaction, n)
	start := time.Now()
	results, err := ens.Run(ctx, n)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSHIFT\tSTATUS\tCONTAINMENT\tKINETIC")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%+.1f\t%s\t%.3f\t%.6f\n", r.Seed,
			r.Final.State.Shift, r.Final.Display.Label, r.Metrics["containment"], r.Metrics["kinetic_energy"])
	}
	w.Flush()

	fmt.Println("\nmean metrics:")
	printMetrics(sim.Mean(results))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rt, _ := cfg.ReactionType()
	base, coeffs := cfg.Controls, cfg.Coefficients
	points, err := automation.RunSweep(automation.Sweep{
		Reaction:     rt,
		Control:      control,
		Min:          sweepMin,
		Max:          sweepMax,
		Steps:        steps,
		Base:         &base,
		Coefficients: &coeffs,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSHIFT\tSTATUS\n", strings.ToUpper(control))
	shifts := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.2f\t%+.1f\t%s\n", p.Value, p.Shift, p.Status.Label())
		shifts[i] = p.Shift
	}
	w.Flush()

	fmt.Println()
	fmt.Println(asciigraph.Plot(shifts,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("%s shift vs %s (%g..%g)", rt, control, sweepMin, sweepMax)),
	))

	if csvOut != "" {
		if err := writeFile(csvOut, func(w io.Writer) error { return export.WriteSweepCSV(w, control, points) }); err != nil {
			return err
		}
	}
	if jsonOut != "" {
		if err := writeFile(jsonOut, func(w io.Writer) error { return export.WriteSweepJSON(w, points) }); err != nil {
			return err
		}
	}
	return nil
}

// parseGrid reads control=min:max:n.
func parseGrid(specs []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(specs))
	for _, spec := range specs {
		name, rng, ok := strings.Cut(spec, "=")
		parts := strings.Split(rng, ":")
		if !ok || len(parts) != 3 {
			return nil, fmt.Errorf("bad grid %q, want control=min:max:n", spec)
		}
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return nil, fmt.Errorf("bad grid %q, want control=min:max:n", spec)
		}
		values := make([]float64, n)
		for i := range values {
			if n == 1 {
				values[i] = lo
				break
			}
			values[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		out[name] = values
	}
	return out, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}
	g, err := parseGrid(grid)
	if err != nil {
		return err
	}
	rt, _ := cfg.ReactionType()
	gs, err := automation.NewGridSearch(rt, g)
	if err != nil {
		return err
	}
	best, err := gs.Search(cmd.Context(), target)
	if err != nil {
		return err
	}

	fmt.Printf("best match for shift %+.1f on %s:\n", target, rt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range automation.Controls {
		if v, ok := best.Controls[name]; ok {
			fmt.Fprintf(w, "  %s:\t%.3f\n", name, v)
		}
	}
	fmt.Fprintf(w, "  shift:\t%+.2f\n", best.Shift)
	fmt.Fprintf(w, "  distance:\t%.3f\n", best.Distance)
	w.Flush()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	res, err := automation.RunScenario(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d ticks\n", res.Name, len(res.Trace))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()
	for _, o := range res.Observations {
		fmt.Printf("[%d] %s\n", o.ID, o.Summary())
	}
	if len(res.Observations) > 0 {
		fmt.Println()
	}
	printSnapshot(res.Final)
	printMetrics(res.Metrics)

	shifts := make([]float64, len(res.Trace))
	for i, p := range res.Trace {
		shifts[i] = p.Shift
	}
	if len(shifts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(shifts,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("shift per tick"),
		))
	}

	if csvOut != "" {
		if err := writeFile(csvOut, func(w io.Writer) error { return export.WriteTraceCSV(w, res.Trace) }); err != nil {
			return err
		}
	}
	if jsonOut != "" {
		if err := writeFile(jsonOut, func(w io.Writer) error { return export.WriteScenarioJSON(w, res) }); err != nil {
			return err
		}
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	v, err := export.ParseView(view)
	if err != nil {
		return err
	}
	s, err := cfg.Build(sim.WithLogger(logger))
	if err != nil {
		return err
	}
	if cfg.Ticks > 0 {
		if _, err := s.Run(cmd.Context(), cfg.Ticks, nil); err != nil {
			return err
		}
	}

	svg := export.ChamberToSVG(s.Particles(), s.Chamber(), v, imgSize, imgSize)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", zap.String("path", outFile), zap.Stringer("view", v), zap.Int("tick", s.Ticks()))
	fmt.Printf("%s view after %d ticks written to %s\n", v, s.Ticks(), outFile)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.Build(sim.WithLogger(logger))
	if err != nil {
		return err
	}
	srv := server.New(s, server.Options{Addr: cfg.Server.Addr, FPS: cfg.FPS, Logger: logger})
	fmt.Printf("serving %s on %s (ctrl+c to stop)\n", s.Reaction(), cfg.Server.Addr)
	return srv.ListenAndServe(cmd.Context())
}

func printSnapshot(snap sim.Snapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "reaction:\t%s\t%s\n", snap.Reaction, snap.Equation)
	fmt.Fprintf(w, "status:\t%s\t(shift %+.1f)\n", snap.Display.Label, snap.State.Shift)
	fmt.Fprintf(w, "conditions:\t%.1f °C, %.2f atm, %.1f%% / %.1f%%\n",
		snap.State.Temperature, snap.State.Pressure, snap.State.ReactantConc, snap.State.ProductConc)
	w.Flush()
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s:\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
