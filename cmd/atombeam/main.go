package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qplex/atombeam/internal/beam"
	"github.com/qplex/atombeam/internal/capture"
	"github.com/qplex/atombeam/internal/config"
	"github.com/qplex/atombeam/internal/diag"
	"github.com/qplex/atombeam/internal/lasers"
	"github.com/qplex/atombeam/internal/log"
	"github.com/qplex/atombeam/internal/oven"
	"github.com/qplex/atombeam/internal/store"
	"github.com/qplex/atombeam/internal/sweep"
	"github.com/qplex/atombeam/internal/tui"
	"github.com/qplex/atombeam/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	atomName   string
	count      int
	seed       uint64
	debug      bool
	saveRun    bool
	live       bool
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atombeam",
		Short: "cold-atom beam sampling and capture analysis",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atombeam", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&atomName, "atom", "", "override atom species")
	rootCmd.PersistentFlags().IntVar(&count, "atoms", 0, "override particle count")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "sample an initial phase-space cloud and plot the distributions",
		RunE:  runSample,
	}
	sampleCmd.Flags().BoolVar(&saveRun, "save", false, "persist the sampled cloud")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sample, propagate (free flight), and classify one cloud",
		RunE:  runOnce,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "scan slower detunings and record capture rates",
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "persist sweep rates")
	sweepCmd.Flags().BoolVar(&live, "live", false, "live terminal view")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent detuning runs (0 = config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.PresetNames() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(sampleCmd, runCmd, sweepCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		build, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = build()
	}

	if atomName != "" {
		cfg.Atom = atomName
	}
	if count > 0 {
		cfg.Count = count
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, nil
}

func buildSource(cfg *config.Config) (*oven.Source, error) {
	a, err := cfg.AtomSpecies()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	return oven.NewSource(a, cfg.Geometry(), rng)
}

func runSample(cmd *cobra.Command, args []string) error {
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := cfg.AtomSpecies()
	if err != nil {
		return err
	}

	geo := cfg.Geometry()
	axial := oven.Axial(a, geo.Temperature, geo.Diameter, geo.Length, geo.VMinAxial, geo.VMaxAxial)
	transverse := oven.Transverse(a, geo.Temperature, geo.Diameter, geo.Length, geo.VMinTransverse, geo.VMaxTransverse)

	fmt.Println(viz.DensityPlot(axial, 400))
	fmt.Println()
	fmt.Println(viz.DensityPlot(transverse, 400))
	fmt.Println()

	table, err := oven.BuildCDF(axial, geo.GridSize)
	if err != nil {
		return err
	}
	fmt.Println(viz.CDFPlot(table, "axial speed CDF"))
	fmt.Println()

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}
	log.Infow("sampling cloud", "atom", a.Name, "count", cfg.Count, "seed", cfg.Seed)
	cloud, err := src.Sample(cfg.Count)
	if err != nil {
		return err
	}

	positions := make([]oven.Vec3, len(cloud))
	for i, s := range cloud {
		positions[i] = oven.Vec3{s[beam.X], s[beam.Y], s[beam.Z]}
	}
	fmt.Println("aperture scatter:")
	fmt.Println(viz.ApertureScatter(positions, geo.Diameter/2, 40, 10))

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveCloud(a.Name, cfg.Seed, cloud)
		if err != nil {
			return err
		}
		log.Infof("saved run %s", runID)
	}
	return nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := cfg.AtomSpecies()
	if err != nil {
		return err
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}

	cloud, err := src.Sample(cfg.Count)
	if err != nil {
		return err
	}

	times := beam.TimeGrid(cfg.Sim.Duration, cfg.Sim.Steps)
	hist, err := beam.NewBallistic().Propagate(context.Background(), cloud, times)
	if err != nil {
		return err
	}
	log.Infow("propagated (free flight)", "atoms", len(cloud), "steps", len(times))

	part, err := capture.Classify(hist, cfg.ClassifyCriteria())
	if err != nil {
		return err
	}

	fmt.Printf("escaped: %d  lost: %d  trapped: %d\n",
		len(part.Escaped), len(part.Lost), len(part.Trapped))
	fmt.Printf("capture rate: %.4f\n", part.Rate())

	tAxial := diag.AxialTemperature(hist, a)
	tRadial := diag.RadialTemperature(hist, a)
	fmt.Printf("final axial temperature: %.3g K, radial: %.3g K\n",
		tAxial[len(tAxial)-1], tRadial[len(tRadial)-1])

	speeds := diag.MeanSpeed(hist)
	fmt.Printf("mean beam speed: %.1f m/s\n", speeds[len(speeds)-1])
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := cfg.AtomSpecies()
	if err != nil {
		return err
	}
	src, err := buildSource(cfg)
	if err != nil {
		return err
	}
	cloud, err := src.Sample(cfg.Count)
	if err != nil {
		return err
	}

	gamma := a.Trans["main"].Gamma
	if cfg.Sweep.GammaTo <= cfg.Sweep.GammaFrom {
		return fmt.Errorf("empty detuning range [%d, %d)", cfg.Sweep.GammaFrom, cfg.Sweep.GammaTo)
	}
	detunings := make([]float64, 0, cfg.Sweep.GammaTo-cfg.Sweep.GammaFrom)
	for i := cfg.Sweep.GammaFrom; i < cfg.Sweep.GammaTo; i++ {
		detunings = append(detunings, -0.5*float64(i)*gamma+0.5)
	}

	w := cfg.Sweep.Workers
	if workers > 0 {
		w = workers
	}

	driver := &sweep.Driver{
		Base:      lasers.SlowerConfiguration(detunings[0]),
		Detunings: detunings,
		Times:     beam.TimeGrid(cfg.Sim.Duration, cfg.Sim.Steps),
		Criteria:  cfg.ClassifyCriteria(),
		Workers:   w,
		// Free-flight stand-in; a force engine would build its
		// propagator from the optical table here.
		Factory: func(_ *lasers.Configuration) (beam.Propagator, error) {
			return beam.NewBallistic(), nil
		},
	}

	log.Infow("starting sweep", "atom", a.Name, "detunings", len(detunings), "workers", w)

	var points []sweep.Point
	if live {
		view := tea.NewProgram(tui.NewModel(a.Name, len(detunings)))
		points, err = runSweepLive(context.Background(), driver, cloud, view)
	} else {
		driver.OnPoint = func(i int, p sweep.Point) {
			log.Infof("detuning %.3e -> rate %.4f", p.Detuning, p.Rate)
		}
		points, err = driver.Run(context.Background(), cloud)
	}
	if err != nil {
		return err
	}

	fmt.Println(viz.RatePlot(points))

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveSweep(a.Name, cfg.Seed, cfg.Count, points)
		if err != nil {
			return err
		}
		log.Infof("saved run %s", runID)
	}
	return nil
}

// errSweepInterrupted reports a live view that closed before the scan
// delivered its result.
var errSweepInterrupted = errors.New("sweep interrupted before completion")

// sweepView is the slice of tea.Program the live sweep drives.
type sweepView interface {
	Send(msg tea.Msg)
	Run() (tea.Model, error)
}

// runSweepLive runs the scan in a goroutine and blocks on the view.
// The result crosses back over a channel so the view returning early
// (quit keypress) cancels the scan and reports an interruption rather
// than racing the scan goroutine for a half-written result.
func runSweepLive(ctx context.Context, driver *sweep.Driver, cloud beam.Cloud, view sweepView) ([]sweep.Point, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver.OnPoint = func(i int, p sweep.Point) {
		view.Send(tui.PointMsg{Index: i, Point: p})
	}

	type result struct {
		points []sweep.Point
		err    error
	}
	results := make(chan result, 1)
	go func() {
		points, err := driver.Run(ctx, cloud)
		results <- result{points, err}
		view.Send(tui.DoneMsg{Err: err})
	}()

	if _, err := view.Run(); err != nil {
		cancel()
		<-results
		return nil, err
	}

	select {
	case res := <-results:
		return res.points, res.err
	default:
		cancel()
		<-results
		return nil, errSweepInterrupted
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tATOM\tATOMS\tSEED\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Kind, r.Atom, r.Count, r.Seed, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	points, err := st.LoadSweep(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.RatePlot(points))
	return nil
}
