package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/aholtz/demag/internal/config"
	"github.com/aholtz/demag/internal/export"
	"github.com/aholtz/demag/internal/m3tm"
	"github.com/aholtz/demag/internal/metrics"
	"github.com/aholtz/demag/internal/pulse"
	"github.com/aholtz/demag/internal/sim"
	"github.com/aholtz/demag/internal/storage"
	"github.com/aholtz/demag/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// pulse and grid
	fluence    float64
	fwhm       float64
	gridStart  float64
	gridEnd    float64
	gridPoints int
	// initial condition
	initTe  float64
	initTph float64
	// material overrides
	matCp    float64
	matGamma float64
	matGep   float64
	matTc    float64
	matR     float64
	// output options
	series   string
	outDir   string
	validate bool
	// sweep range
	sweepMin float64
	sweepMax float64
	sweepN   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "demag",
		Short: "ultrafast demagnetization simulation lab (M3TM)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".demag", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a pump simulation and store the trace",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&validate, "validate", true, "stop and record an error when the state goes non-finite")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "terminal plot of a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "m", "series to plot: m, te, tph")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "quench versus pulse energy, runs in parallel",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5e9, "lowest fluence")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 8e9, "highest fluence")
	sweepCmd.Flags().IntVar(&sweepN, "n", 8, "number of sweep points")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trace as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and trace as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportFigCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render trace figures (svg)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportFigures,
	}
	exportFigCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFLUENCE\tFWHM\tINIT T\tGRID")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.3g\t%.3g\t%.2f\t[%.3g, %.3g] x%d\n",
					name, c.Pulse.Fluence, c.Pulse.FWHM, c.InitTe,
					c.Grid.Start, c.Grid.End, c.Grid.Points)
			}
			return w.Flush()
		},
	}

	equilibriumCmd := &cobra.Command{
		Use:   "equilibrium",
		Short: "tabulate equilibrium magnetization up to the Curie temperature",
		RunE:  tabulateEquilibrium,
	}
	equilibriumCmd.Flags().Float64Var(&matTc, "tc", 1388, "Curie temperature")
	equilibriumCmd.Flags().IntVar(&gridPoints, "points", 60, "number of temperatures")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, liveCmd, sweepCmd,
		exportCSVCmd, exportJSONCmd, exportFigCmd, presetsCmd, equilibriumCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().Float64Var(&fluence, "fluence", config.DefaultFluence, "absorbed energy density")
	cmd.Flags().Float64Var(&fwhm, "fwhm", config.DefaultFWHM, "pulse duration (FWHM, seconds)")
	cmd.Flags().Float64Var(&gridStart, "tstart", config.DefaultStart, "grid start time")
	cmd.Flags().Float64Var(&gridEnd, "tend", config.DefaultEnd, "grid end time")
	cmd.Flags().IntVar(&gridPoints, "points", config.DefaultPoints, "grid points")
	cmd.Flags().Float64Var(&initTe, "te", config.DefaultInitTemp, "initial electron temperature")
	cmd.Flags().Float64Var(&initTph, "tph", config.DefaultInitTemp, "initial phonon temperature")
	cmd.Flags().Float64Var(&matCp, "cp", 0, "lattice heat capacity override")
	cmd.Flags().Float64Var(&matGamma, "gamma", 0, "electron heat capacity coefficient override")
	cmd.Flags().Float64Var(&matGep, "gep", 0, "electron-phonon coupling override")
	cmd.Flags().Float64Var(&matTc, "tc", 0, "Curie temperature override")
	cmd.Flags().Float64Var(&matR, "r", 0, "demagnetization rate override")
}

// buildConfig resolves preset, config file, and flag overrides, in
// increasing precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("fluence") {
		cfg.Pulse.Fluence = fluence
	}
	if cmd.Flags().Changed("fwhm") {
		cfg.Pulse.FWHM = fwhm
	}
	if cmd.Flags().Changed("tstart") {
		cfg.Grid.Start = gridStart
	}
	if cmd.Flags().Changed("tend") {
		cfg.Grid.End = gridEnd
	}
	if cmd.Flags().Changed("points") {
		cfg.Grid.Points = gridPoints
	}
	if cmd.Flags().Changed("te") {
		cfg.InitTe = initTe
	}
	if cmd.Flags().Changed("tph") {
		cfg.InitTph = initTph
	}
	if cmd.Flags().Changed("cp") {
		cfg.Material.Cp = matCp
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Material.Gamma = matGamma
	}
	if cmd.Flags().Changed("gep") {
		cfg.Material.Gep = matGep
	}
	if cmd.Flags().Changed("tc") {
		cfg.Material.Tc = matTc
	}
	if cmd.Flags().Changed("r") {
		cfg.Material.R = matR
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	times := cfg.Grid.Times()
	p, err := pulse.Gaussian(times, cfg.Pulse.Fluence, cfg.Pulse.FWHM)
	if err != nil {
		return err
	}

	sample, err := m3tm.NewSample(cfg.Material.Constants(), cfg.InitTe, cfg.InitTph, times[0])
	if err != nil {
		return err
	}

	runner := sim.New()
	runner.AddMetric(metrics.NewQuench())
	runner.AddMetric(metrics.NewPeakElectron())
	runner.AddMetric(metrics.NewPeakPhonon())
	runner.AddMetric(metrics.NewRecovery())

	fmt.Println("running demagnetization simulation...")
	start := time.Now()

	result, err := runner.Run(context.Background(), sample, times, p, sim.Config{ValidateState: validate})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Material:  cfg.Material.Constants(),
		InitTe:    cfg.InitTe,
		InitTph:   cfg.InitTph,
		Fluence:   cfg.Pulse.Fluence,
		FWHM:      cfg.Pulse.FWHM,
		GridStart: cfg.Grid.Start,
		GridEnd:   cfg.Grid.End,
		Points:    cfg.Grid.Points,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	fmt.Println("\npulse-weighted measurements:")
	fmt.Printf("  m / m0: %.6f\n", result.Measured.Magnetization)
	fmt.Printf("  Te:     %.2f K\n", result.Measured.ElectronTemperature)
	fmt.Printf("  Tph:    %.2f K\n", result.Measured.PhononTemperature)

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
	fmt.Fprintln(w, "ID\tTIME\tFLUENCE\tFWHM\tPOINTS\tQUENCH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3g\t%.3g\t%d\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Fluence,
			run.FWHM,
			run.Points,
			run.Metrics["quench"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("empty trace for run %s", args[0])
	}

	var data []float64
	var caption string
	switch series {
	case "te":
		data, caption = tr.Te, "Te (K)"
	case "tph":
		data, caption = tr.Tph, "Tph (K)"
	case "m":
		data, caption = tr.M, "m"
	default:
		return fmt.Errorf("unknown series: %s (want m, te, or tph)", series)
	}

	chart := asciigraph.Plot(data, asciigraph.Height(14), asciigraph.Width(72), asciigraph.Caption(caption))
	fmt.Println(chart)
	fmt.Printf("\ntime span: %.1f fs to %.1f fs\n", tr.Times[0]*1e15, tr.Times[len(tr.Times)-1]*1e15)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	times := cfg.Grid.Times()
	p, err := pulse.Gaussian(times, cfg.Pulse.Fluence, cfg.Pulse.FWHM)
	if err != nil {
		return err
	}

	newSample := func() (*m3tm.Sample, error) {
		return m3tm.NewSample(cfg.Material.Constants(), cfg.InitTe, cfg.InitTph, times[0])
	}
	return viz.Run(newSample, times, p)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if sweepN < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", sweepN)
	}

	times := cfg.Grid.Times()
	fluences := pulse.Linspace(sweepMin, sweepMax, sweepN)

	newSample := func() (*m3tm.Sample, error) {
		return m3tm.NewSample(cfg.Material.Constants(), cfg.InitTe, cfg.InitTph, times[0])
	}

	fmt.Printf("sweeping %d fluences...\n", sweepN)
	start := time.Now()

	sweep := sim.NewSweep(newSample, cfg.Pulse.FWHM, fluences)
	points, err := sweep.Run(context.Background(), times, sim.Config{})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLUENCE\tQUENCH\tWEIGHTED m/m0")
	quenches := make([]float64, len(points))
	for i, pt := range points {
		quenches[i] = pt.Quench
		fmt.Fprintf(w, "%.3g\t%.4f\t%.4f\n", pt.Fluence, pt.Quench, pt.Measured.Magnetization)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	chart := asciigraph.Plot(quenches, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("quench vs fluence"))
	fmt.Println(chart)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "te", "tph", "m"}); err != nil {
		return err
	}
	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'e', 9, 64),
			strconv.FormatFloat(tr.Te[i], 'e', 9, 64),
			strconv.FormatFloat(tr.Tph[i], 'e', 9, 64),
			strconv.FormatFloat(tr.M[i], 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta  *storage.RunMetadata `json:"meta"`
		Times []float64            `json:"times"`
		Te    []float64            `json:"te"`
		Tph   []float64            `json:"tph"`
		M     []float64            `json:"m"`
	}{meta, tr.Times, tr.Te, tr.Tph, tr.M}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportFigures(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	etr := &export.Trace{Times: tr.Times, Te: tr.Te, Tph: tr.Tph, M: tr.M}

	mag, err := export.MagnetizationFigure(etr)
	if err != nil {
		return err
	}
	magPath := filepath.Join(outDir, args[0]+"_m.svg")
	if err := export.Save(mag, magPath); err != nil {
		return err
	}

	temps, err := export.TemperatureFigure(etr)
	if err != nil {
		return err
	}
	tempPath := filepath.Join(outDir, args[0]+"_temps.svg")
	if err := export.Save(temps, tempPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", magPath)
	fmt.Printf("wrote %s\n", tempPath)
	return nil
}

func tabulateEquilibrium(cmd *cobra.Command, args []string) error {
	if matTc <= 0 {
		return fmt.Errorf("tc must be positive, got %g", matTc)
	}
	if gridPoints < 2 {
		return fmt.Errorf("need at least 2 points, got %d", gridPoints)
	}

	temps := pulse.Linspace(matTc/100, matTc*0.999, gridPoints)
	ms := make([]float64, 0, len(temps))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T (K)\tm_eq")
	for _, t := range temps {
		m, err := m3tm.EquilibriumMagnetization(t, matTc)
		if err != nil {
			return err
		}
		ms = append(ms, m)
		fmt.Fprintf(w, "%.1f\t%.6f\n", t, m)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	chart := asciigraph.Plot(ms, asciigraph.Height(12), asciigraph.Width(60), asciigraph.Caption("m_eq vs T"))
	fmt.Println(chart)
	return nil
}
