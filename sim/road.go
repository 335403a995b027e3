package sim

import (
	"fmt"
	"sort"
)

// Road is the fixed-length car collection of one run over a circular road
// of Length cells per lane. Cars are allocated once and mutated in place;
// none are added or removed while the simulation runs.
type Road struct {
	length int
	cars   []Car
}

// NewRoad copies cars into a new Road of the given length. Gaps are left as
// provided; call ResolveNeighbors before relying on them.
func NewRoad(length int, cars []Car) *Road {
	owned := make([]Car, len(cars))
	copy(owned, cars)
	return &Road{length: length, cars: owned}
}

// Length returns the number of cells per lane.
func (r *Road) Length() int { return r.length }

// Len returns the number of cars.
func (r *Road) Len() int { return len(r.cars) }

// Car returns a copy of car i.
func (r *Road) Car(i int) Car { return r.cars[i] }

// Cars returns a copy of all cars in index order.
func (r *Road) Cars() []Car {
	out := make([]Car, len(r.cars))
	copy(out, r.cars)
	return out
}

// LaneCount returns the number of cars currently on lane.
func (r *Road) LaneCount(lane Lane) int {
	n := 0
	for _, c := range r.cars {
		if c.Lane == lane {
			n++
		}
	}
	return n
}

// CarAt returns the index of the car occupying (lane, pos), or -1.
func (r *Road) CarAt(lane Lane, pos int) int {
	for i, c := range r.cars {
		if c.Lane == lane && c.Position == pos {
			return i
		}
	}
	return -1
}

// LaneSlot is one entry of a lane's ordered occupancy.
type LaneSlot struct {
	Index    int // car index in the Road
	Position int
}

// LaneOrder returns the cars on lane sorted by position ascending.
// Ties (only possible in an invalid state) are broken by car index.
func (r *Road) LaneOrder(lane Lane) []LaneSlot {
	slots := make([]LaneSlot, 0, len(r.cars))
	for i, c := range r.cars {
		if c.Lane == lane {
			slots = append(slots, LaneSlot{Index: i, Position: c.Position})
		}
	}
	sort.Slice(slots, func(a, b int) bool {
		if slots[a].Position != slots[b].Position {
			return slots[a].Position < slots[b].Position
		}
		return slots[a].Index < slots[b].Index
	})
	return slots
}

// CheckInvariants verifies lanes, positions, velocities, cell exclusivity and
// cached gaps. Same-lane gaps must lie in [0, length]; other-lane gaps may be
// -1, meaning a car runs alongside in the other lane. It returns an
// *InvariantError for the first violation with Step set to -1; callers inside
// the step loop fill in the step.
func (r *Road) CheckInvariants(vmax int) error {
	if err := r.checkCars(vmax); err != nil {
		return err
	}
	for i, c := range r.cars {
		gaps := [4]struct {
			name string
			gap  int
			min  int
		}{
			{"same_front", c.Gaps.SameFront, 0}, {"same_back", c.Gaps.SameBack, 0},
			{"other_front", c.Gaps.OtherFront, -1}, {"other_back", c.Gaps.OtherBack, -1},
		}
		for _, g := range gaps {
			if g.gap < g.min || g.gap > r.length {
				return &InvariantError{Step: -1, Car: i, Kind: InvariantGap,
					Detail: fmt.Sprintf("%s gap %d outside [%d, %d]", g.name, g.gap, g.min, r.length)}
			}
		}
	}
	return nil
}

// checkCars validates per-car state and cell exclusivity, ignoring gaps.
func (r *Road) checkCars(vmax int) error {
	occupied := make(map[[2]int]int, len(r.cars))
	for i, c := range r.cars {
		if !c.Lane.Valid() {
			return &InvariantError{Step: -1, Car: i, Kind: InvariantLane,
				Detail: fmt.Sprintf("lane %d is not 0 or 1", int(c.Lane))}
		}
		if c.Position < 0 || c.Position >= r.length {
			return &InvariantError{Step: -1, Car: i, Kind: InvariantPosition,
				Detail: fmt.Sprintf("position %d outside [0, %d)", c.Position, r.length)}
		}
		if c.Velocity < 0 || c.Velocity > vmax {
			return &InvariantError{Step: -1, Car: i, Kind: InvariantVelocity,
				Detail: fmt.Sprintf("velocity %d outside [0, %d]", c.Velocity, vmax)}
		}
		cell := [2]int{int(c.Lane), c.Position}
		if other, ok := occupied[cell]; ok {
			return &InvariantError{Step: -1, Car: i, Kind: InvariantCollision,
				Detail: fmt.Sprintf("shares %s cell %d with car %d", c.Lane, c.Position, other)}
		}
		occupied[cell] = i
	}
	return nil
}
