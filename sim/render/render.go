// Package render draws both lanes of a sim.Road as fixed-width text cells.
// It is a pure projection: nothing here mutates the road.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim"
)

// EmptyCell is drawn for a cell with no car.
const EmptyCell = "(  )"

// Cell formats a car index as a two-digit, zero-padded cell. Indices of 100
// and above are printed in full and widen the cell.
func Cell(index int) string {
	return fmt.Sprintf("(%02d)", index)
}

var (
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	slowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f"))
	fastStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fff87"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
)

// Renderer writes one block per step: a "t = N" header, one line per lane,
// then a blank line. It implements sim.Observer.
type Renderer struct {
	w      io.Writer
	blocks int
	color  bool
	vmax   int
}

// NewRenderer creates a Renderer that draws the first blocks cells of each lane.
func NewRenderer(w io.Writer, blocks int) *Renderer {
	return &Renderer{w: w, blocks: blocks}
}

// WithColor enables lipgloss styling; cars are colored by speed relative to vmax.
func (r *Renderer) WithColor(vmax int) *Renderer {
	r.color = true
	r.vmax = vmax
	return r
}

// OnStep renders road after step.
func (r *Renderer) OnStep(step int, road *sim.Road) error {
	header := fmt.Sprintf("t = %d", step)
	if r.color {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}
	return r.Road(road)
}

// Road draws both lanes followed by a blank line.
func (r *Renderer) Road(road *sim.Road) error {
	for _, lane := range sim.Lanes {
		if _, err := fmt.Fprintln(r.w, r.Lane(road, lane)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// Lane returns the rendered line for one lane. Cars beyond the first
// blocks cells are not shown.
func (r *Renderer) Lane(road *sim.Road, lane sim.Lane) string {
	order := road.LaneOrder(lane)
	var b strings.Builder
	next := 0
	for pos := 0; pos < r.blocks; pos++ {
		for next < len(order) && order[next].Position < pos {
			next++
		}
		if next < len(order) && order[next].Position == pos {
			b.WriteString(r.carCell(order[next].Index, road.Car(order[next].Index).Velocity))
			next++
			continue
		}
		b.WriteString(r.emptyCell())
	}
	return b.String()
}

func (r *Renderer) carCell(index, velocity int) string {
	s := Cell(index)
	if !r.color {
		return s
	}
	switch {
	case velocity == 0:
		return stoppedStyle.Render(s)
	case 2*velocity <= r.vmax:
		return slowStyle.Render(s)
	default:
		return fastStyle.Render(s)
	}
}

func (r *Renderer) emptyCell() string {
	if !r.color {
		return EmptyCell
	}
	return emptyStyle.Render(EmptyCell)
}
