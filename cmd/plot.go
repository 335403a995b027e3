package cmd

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim"
)

// plotSeries renders one series as an ASCII chart. Empty series print nothing.
func plotSeries(out io.Writer, caption string, data []float64) error {
	if len(data) == 0 {
		return nil
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	_, err := fmt.Fprintf(out, "%s\n\n", graph)
	return err
}

// plotMetrics charts the per-step flow and mean velocity of a finished run.
func plotMetrics(out io.Writer, m *sim.Metrics) error {
	if err := plotSeries(out, "flow (cars/step/lane) vs step", m.FlowSeries()); err != nil {
		return err
	}
	return plotSeries(out, "mean velocity (cells/step) vs step", m.VelocitySeries())
}
