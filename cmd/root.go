package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim"
	"github.com/H-Niyazi/Double-Lane-Traffic/sim/render"
	"github.com/H-Niyazi/Double-Lane-Traffic/sim/trace"
)

var (
	// CLI flags for the road and the update rules
	seed             int64   // Master seed for the partitioned RNG
	roadLength       int     // Cells per lane
	vmax             int     // Maximum velocity in cells per step
	numCars          int     // Total cars, split equally across lanes
	decelProb        float64 // Probability of a random slowdown
	changeProb       float64 // Probability of taking a feasible lane change
	steps            int     // Number of simulated steps
	blocksShown      int     // Cells rendered per lane
	laneChangePolicy string  // sequential or simultaneous
	resolverWorkers  int     // > 1 resolves neighbors in parallel
	traceLevel       string  // none, decisions or steps

	// CLI flags for configuration sources and output
	logLevel      string // Log verbosity level
	configPath    string // YAML file holding one sim.Config
	scenarioName  string // Preset from the scenarios file
	scenariosFile string // Path to the scenarios file
	plot          bool   // Plot flow and mean velocity after the run
	color         bool   // Color cars by speed
	quiet         bool   // Skip per-step road rendering
	metricsOut    string // CSV file for per-step metrics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "traffic-sim",
	Short: "Two-lane cellular automaton traffic simulator",
}

// runCmd executes the simulation using parameters from the config sources and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the traffic simulation and render each step",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cfg, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// setupLogging applies --log to the package-level logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig layers the configuration sources: defaults, then the named
// scenario, then the --config file, then any flag set explicitly.
func resolveConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	if scenarioName != "" {
		file, err := LoadScenarios(scenariosFile)
		if err != nil {
			return cfg, err
		}
		sc, err := file.Lookup(scenarioName)
		if err != nil {
			return cfg, err
		}
		sc.Apply(&cfg)
		logrus.Infof("Using scenario %q: %s", scenarioName, sc.Description)
	}

	if configPath != "" {
		var err error
		if cfg, err = LoadConfigFile(configPath, cfg); err != nil {
			return cfg, err
		}
	}

	applyFlagOverrides(flags, &cfg)
	return cfg, cfg.Validate()
}

// applyFlagOverrides copies only the flags the user set, so file values survive.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *sim.Config) {
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("road-length") {
		cfg.RoadLength = roadLength
	}
	if flags.Changed("vmax") {
		cfg.VMax = vmax
	}
	if flags.Changed("cars") {
		cfg.NumCars = numCars
	}
	if flags.Changed("decel-prob") {
		cfg.DecelProb = decelProb
	}
	if flags.Changed("change-prob") {
		cfg.ChangeProb = changeProb
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("blocks") {
		cfg.BlocksShown = blocksShown
	}
	if flags.Changed("lane-change-policy") {
		cfg.LaneChangePolicy = sim.LaneChangePolicy(laneChangePolicy)
	}
	if flags.Changed("resolver-workers") {
		cfg.ResolverWorkers = resolverWorkers
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = traceLevel
	}
}

// runSimulation runs cfg to completion, writing the rendered road, the
// metrics summary and the optional plots and trace summary to out.
func runSimulation(cfg sim.Config, out io.Writer) error {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	if !quiet {
		r := render.NewRenderer(out, cfg.BlocksShown)
		if color {
			r = r.WithColor(cfg.VMax)
		}
		s.AddObserver(r)
	}
	if err := s.Run(); err != nil {
		return err
	}

	s.Metrics.Print(out)
	if metricsOut != "" {
		if err := s.Metrics.SaveToFile(metricsOut); err != nil {
			return err
		}
	}
	if plot {
		if err := plotMetrics(out, s.Metrics); err != nil {
			return err
		}
	}
	if s.Trace != nil {
		printTraceSummary(out, trace.Summarize(s.Trace))
	}
	return nil
}

func printTraceSummary(out io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(out, "=== Trace Summary ===")
	fmt.Fprintf(out, "Lane Changes         : %d\n", ts.TotalLaneChanges)
	fmt.Fprintf(out, "Cars That Changed    : %d\n", ts.UniqueCars)
	fmt.Fprintf(out, "Into Lane 0 / 1      : %d / %d\n", ts.ChangesIntoLane[0], ts.ChangesIntoLane[1])
	if ts.BusiestStep >= 0 {
		fmt.Fprintf(out, "Busiest Step         : %d (%d changes)\n", ts.BusiestStep, ts.MaxChangesPerStep)
	}
	if ts.StepsRecorded > 0 {
		fmt.Fprintf(out, "Mean Flow            : %.3f\n", ts.MeanFlow)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerConfigFlags binds the sim.Config flags to fs. Defaults mirror
// sim.DefaultConfig so --help shows the effective values.
func registerConfigFlags(fs *pflag.FlagSet) {
	def := sim.DefaultConfig()
	fs.Int64Var(&seed, "seed", def.Seed, "Seed for placement, lane changes and slowdowns")
	fs.IntVar(&roadLength, "road-length", def.RoadLength, "Cells per lane")
	fs.IntVar(&vmax, "vmax", def.VMax, "Maximum velocity (cells per step)")
	fs.IntVar(&numCars, "cars", def.NumCars, "Total number of cars (even, split across both lanes)")
	fs.Float64Var(&decelProb, "decel-prob", def.DecelProb, "Probability of a random slowdown")
	fs.Float64Var(&changeProb, "change-prob", def.ChangeProb, "Probability of taking a feasible lane change")
	fs.IntVar(&steps, "steps", def.Steps, "Number of time steps")
	fs.IntVar(&blocksShown, "blocks", def.BlocksShown, "Cells of each lane to render")
	fs.StringVar(&laneChangePolicy, "lane-change-policy", string(def.LaneChangePolicy), "Lane change policy (sequential, simultaneous)")
	fs.IntVar(&resolverWorkers, "resolver-workers", def.ResolverWorkers, "Goroutines for neighbor resolution (0 or 1 = serial)")
	fs.StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions, steps)")

	fs.StringVar(&configPath, "config", "", "YAML file with simulation parameters")
	fs.StringVar(&scenarioName, "scenario", "", "Named preset from the scenarios file")
	fs.StringVar(&scenariosFile, "scenarios-file", "scenarios.yaml", "Path to the scenarios file")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerConfigFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&plot, "plot", false, "Plot per-step flow and mean velocity")
	runCmd.Flags().BoolVar(&color, "color", false, "Color cars by speed")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not render the road")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write per-step metrics to this CSV file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
