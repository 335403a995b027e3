package sim

import "fmt"

// Lane identifies one of the two parallel lanes.
type Lane int

const (
	LaneLeft  Lane = 0
	LaneRight Lane = 1
)

// Lanes lists both lanes in render order.
var Lanes = [2]Lane{LaneLeft, LaneRight}

// Other returns the opposite lane.
func (l Lane) Other() Lane {
	return 1 - l
}

// Valid reports whether l is one of the two lane identifiers.
func (l Lane) Valid() bool {
	return l == LaneLeft || l == LaneRight
}

func (l Lane) String() string {
	return fmt.Sprintf("lane%d", int(l))
}

// Gaps caches the circular distances, in empty cells, from a car to its
// nearest neighbors. A gap equal to the road length means the lane holds no
// car to measure against.
type Gaps struct {
	SameFront  int // empty cells to the nearest car ahead in the same lane
	SameBack   int // empty cells to the nearest car behind in the same lane
	OtherFront int // empty cells to the nearest car ahead in the other lane
	OtherBack  int // empty cells to the nearest car behind in the other lane
}

// Car is a single vehicle. Its index in the Road is its identity.
type Car struct {
	Velocity int  // cells per step, 0 <= Velocity <= vmax
	Lane     Lane // current lane
	Position int  // cell index in [0, road_length)
	Gaps     Gaps // recomputed by the Neighbor Resolver after every topology change
}
