package cmd

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1713175349/KMC-Lattice/kmc"
	"github.com/1713175349/KMC-Lattice/walk"
)

var (
	// CLI flags for the engine configuration
	simID        int     // Simulation identifier; seeds the RNG together with the wallclock
	seed         int64   // Fixed wallclock override for reproducible trajectories (0 = real clock)
	logLevel     string  // Log verbosity level
	paramsFile   string  // Optional YAML parameter file; overrides the lattice flags
	logFile      string  // Optional sink for engine log messages
	length       int     // Lattice extent along x
	width        int     // Lattice extent along y
	height       int     // Lattice extent along z
	periodicX    bool    // Periodic boundary along x
	periodicY    bool    // Periodic boundary along y
	periodicZ    bool    // Periodic boundary along z
	unitSize     float64 // Physical length per lattice unit (nm)
	temperature  float64 // Temperature (K)
	enableRecalc bool    // Recalculate neighbor events after each hop
	recalcCutoff float64 // Physical recalc radius (nm)

	// CLI flags for the random-walk demo
	numWalkers int     // Number of walkers placed on the lattice
	numSteps   int     // Number of events to execute
	hopRate    float64 // Hop attempt rate per open direction (1/s)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kmc-lattice",
	Short: "Kinetic Monte Carlo lattice simulation toolkit",
}

// runCmd executes a random-walk simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a random-walk lattice simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		runID := uuid.NewString()
		params, err := loadRunParameters()
		if err != nil {
			logrus.Fatalf("Invalid parameters: %v", err)
		}
		if logFile != "" {
			f, err := os.Create(logFile)
			if err != nil {
				logrus.Fatalf("Cannot open log sink %s: %v", logFile, err)
			}
			defer f.Close()
			params.EnableLogging = true
			params.Logfile = f
		}

		cfg := walk.Config{NumWalkers: numWalkers, HopRate: hopRate}
		if seed != 0 {
			cfg.Clock = func() int64 { return seed }
		}

		logrus.Infof("run %s: starting simulation %d on a %dx%dx%d lattice with %d walkers",
			runID, simID, params.Length, params.Width, params.Height, numWalkers)
		startTime := time.Now()

		model, err := walk.NewModel(params, cfg, simID)
		if err != nil {
			logrus.Fatalf("Cannot initialize simulation: %v", err)
		}
		if err := model.Run(numSteps); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		sim := model.Sim()
		logrus.Infof("run %s: reached t=%g s after %d executed events in %v",
			runID, sim.Time(), sim.NumEventsExecuted(), time.Since(startTime))
	},
}

// loadRunParameters builds the engine parameters from the YAML file when one
// is given, falling back to the lattice flags otherwise.
func loadRunParameters() (kmc.Parameters, error) {
	if paramsFile != "" {
		return kmc.LoadParameters(paramsFile)
	}
	params := kmc.Parameters{
		EnablePeriodicX: periodicX,
		EnablePeriodicY: periodicY,
		EnablePeriodicZ: periodicZ,
		Length:          length,
		Width:           width,
		Height:          height,
		UnitSize:        unitSize,
		Temperature:     temperature,
		EnableRecalc:    enableRecalc,
		RecalcCutoff:    recalcCutoff,
	}
	return params, params.Validate()
}

func init() {
	runCmd.Flags().IntVar(&simID, "id", 0, "simulation identifier")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "fixed wallclock seed for reproducible runs (0 = real clock)")
	runCmd.Flags().StringVar(&logLevel, "loglevel", "info", "log verbosity (debug, info, warn, error)")
	runCmd.Flags().StringVar(&paramsFile, "params", "", "YAML parameter file")
	runCmd.Flags().StringVar(&logFile, "logfile", "", "engine log sink path")
	runCmd.Flags().IntVar(&length, "length", 50, "lattice extent along x")
	runCmd.Flags().IntVar(&width, "width", 50, "lattice extent along y")
	runCmd.Flags().IntVar(&height, "height", 50, "lattice extent along z")
	runCmd.Flags().BoolVar(&periodicX, "periodic-x", true, "periodic boundary along x")
	runCmd.Flags().BoolVar(&periodicY, "periodic-y", true, "periodic boundary along y")
	runCmd.Flags().BoolVar(&periodicZ, "periodic-z", true, "periodic boundary along z")
	runCmd.Flags().Float64Var(&unitSize, "unit-size", 1.0, "physical length per lattice unit (nm)")
	runCmd.Flags().Float64Var(&temperature, "temperature", 300, "temperature (K)")
	runCmd.Flags().BoolVar(&enableRecalc, "recalc", true, "recalculate neighbor events after each hop")
	runCmd.Flags().Float64Var(&recalcCutoff, "recalc-cutoff", 3.0, "physical recalc radius (nm)")
	runCmd.Flags().IntVar(&numWalkers, "walkers", 100, "number of walkers")
	runCmd.Flags().IntVar(&numSteps, "steps", 1000, "number of events to execute")
	runCmd.Flags().Float64Var(&hopRate, "hop-rate", 1e12, "hop attempt rate per open direction (1/s)")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
