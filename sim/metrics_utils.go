// sim/metrics_utils.go
package sim

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of sorted data by linear
// interpolation between the closest ranks. Empty data yields 0.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	if upperIdx >= n {
		return float64(data[n-1])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean is a util function that calculates the mean of a data list
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// sortedHeadways returns the SameFront gap of every car in ascending order.
func sortedHeadways(road *Road) []int {
	out := make([]int, len(road.cars))
	for i, c := range road.cars {
		out[i] = c.Gaps.SameFront
	}
	sort.Ints(out)
	return out
}

var csvHeader = []string{"step", "mean_velocity", "flow", "flow_lane0", "flow_lane1",
	"cars_lane0", "cars_lane1", "lane_changes", "stopped"}

// WriteCSV writes one row per recorded step.
func (m *Metrics) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range m.Steps {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.MeanVelocity, 'f', 6, 64),
			strconv.FormatFloat(s.Flow, 'f', 6, 64),
			strconv.FormatFloat(s.LaneFlow[LaneLeft], 'f', 6, 64),
			strconv.FormatFloat(s.LaneFlow[LaneRight], 'f', 6, 64),
			strconv.Itoa(s.LaneCounts[LaneLeft]),
			strconv.Itoa(s.LaneCounts[LaneRight]),
			strconv.Itoa(s.LaneChanges),
			strconv.Itoa(s.Stopped),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveToFile writes the per-step metrics as CSV to fileName, truncating it.
func (m *Metrics) SaveToFile(fileName string) (err error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if err := m.WriteCSV(writer); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote %d steps to '%s'", len(m.Steps), fileName)
	return nil
}
