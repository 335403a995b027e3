package sim

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// cell is the part of a car the Neighbor Resolver reads.
type cell struct {
	lane Lane
	pos  int
}

func snapshotCells(cars []Car) []cell {
	cells := make([]cell, len(cars))
	for i, c := range cars {
		cells[i] = cell{lane: c.Lane, pos: c.Position}
	}
	return cells
}

// circularGap returns the number of empty cells between a car at from and the
// next car at to, moving forward on a circular road of the given length.
// Two cars on the same cell yield -1.
func circularGap(length, from, to int) int {
	return (to-from+length)%length - 1
}

// gapsFor computes the four gaps of car i against every other car.
// Gaps with no car to measure against stay at length.
func gapsFor(length int, cells []cell, i int) Gaps {
	g := Gaps{SameFront: length, SameBack: length, OtherFront: length, OtherBack: length}
	c := cells[i]
	for j, o := range cells {
		if j == i {
			continue
		}
		front := circularGap(length, c.pos, o.pos)
		back := circularGap(length, o.pos, c.pos)
		if o.lane == c.lane {
			g.SameFront = min(g.SameFront, front)
			g.SameBack = min(g.SameBack, back)
		} else {
			g.OtherFront = min(g.OtherFront, front)
			g.OtherBack = min(g.OtherBack, back)
		}
	}
	return g
}

func collisionError(i int, c cell) *InvariantError {
	return &InvariantError{Step: -1, Car: i, Kind: InvariantCollision,
		Detail: fmt.Sprintf("another car occupies %s cell %d", c.lane, c.pos)}
}

// ResolveNeighbors recomputes the gaps of every car from scratch.
// It returns an *InvariantError if two cars of the same lane share a cell;
// gaps are still written for every car in that case.
func ResolveNeighbors(r *Road) error {
	cells := snapshotCells(r.cars)
	var err error
	for i := range r.cars {
		r.cars[i].Gaps = gapsFor(r.length, cells, i)
		if err == nil && r.cars[i].Gaps.SameFront < 0 {
			err = collisionError(i, cells[i])
		}
	}
	return err
}

// ResolveNeighborsParallel is ResolveNeighbors with the per-car searches split
// across at most workers goroutines. Workers read one snapshot of positions and
// write into a private buffer; gaps are published to the road only after every
// worker has finished, so the result equals the serial resolver's.
func ResolveNeighborsParallel(r *Road, workers int) error {
	n := len(r.cars)
	if workers <= 1 || n < 2 {
		return ResolveNeighbors(r)
	}
	cells := snapshotCells(r.cars)
	resolved := make([]Gaps, n)
	chunk := (n + workers - 1) / workers

	var eg errgroup.Group
	eg.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		eg.Go(func() error {
			var err error
			for i := start; i < end; i++ {
				resolved[i] = gapsFor(r.length, cells, i)
				if err == nil && resolved[i].SameFront < 0 {
					err = collisionError(i, cells[i])
				}
			}
			return err
		})
	}
	err := eg.Wait()
	for i := range r.cars {
		r.cars[i].Gaps = resolved[i]
	}
	return err
}
