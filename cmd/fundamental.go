package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim"
)

var (
	// CLI flags for the density sweep
	minCars  int // Smallest car count of the sweep
	maxCars  int // Largest car count of the sweep (clamped to 2 * road length)
	carsStep int // Car count increment
	warmup   int // Steps excluded from the averages
)

// fundamentalCmd sweeps the car density and prints flow against density
var fundamentalCmd = &cobra.Command{
	Use:   "fundamental",
	Short: "Sweep car density and print the fundamental diagram",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		base, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		counts := sim.CarCounts(minCars, maxCars, carsStep, base.RoadLength)
		if len(counts) == 0 {
			logrus.Fatalf("No car counts in [%d, %d] fit a road of %d cells", minCars, maxCars, base.RoadLength)
		}
		logrus.Infof("Sweeping %d densities over %d steps (warmup %d)", len(counts), base.Steps, warmup)

		points, err := sim.FundamentalDiagram(base, counts, warmup)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		out := cmd.OutOrStdout()
		if err := printDiagram(out, points); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := plotDiagram(out, points); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func printDiagram(out io.Writer, points []sim.DiagramPoint) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CARS\tDENSITY\tFLOW\tFLOW SD\tMEAN V\tLANE CHANGES")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n", p.NumCars, p.Density, p.Flow, p.FlowStdDev, p.MeanVelocity, p.LaneChanges)
	}
	return w.Flush()
}

func plotDiagram(out io.Writer, points []sim.DiagramPoint) error {
	flows := make([]float64, len(points))
	for i, p := range points {
		flows[i] = p.Flow
	}
	return plotSeries(out, "flow vs density (left: sparse, right: jammed)", flows)
}

func init() {
	registerConfigFlags(fundamentalCmd.Flags())
	fundamentalCmd.Flags().IntVar(&minCars, "min-cars", 2, "Smallest total car count")
	fundamentalCmd.Flags().IntVar(&maxCars, "max-cars", 2*sim.DefaultRoadLength, "Largest total car count")
	fundamentalCmd.Flags().IntVar(&carsStep, "cars-step", 4, "Car count increment (even)")
	fundamentalCmd.Flags().IntVar(&warmup, "warmup", 0, "Steps excluded from the flow average")

	rootCmd.AddCommand(fundamentalCmd)
}
