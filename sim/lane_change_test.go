package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim/trace"
)

func TestWantsLaneChange(t *testing.T) {
	tests := []struct {
		name string
		car  Car
		want bool
	}{
		{"blocked with room", Car{Velocity: 2, Gaps: Gaps{SameFront: 1, OtherFront: 5, OtherBack: 6}}, true},
		{"not blocked", Car{Velocity: 2, Gaps: Gaps{SameFront: 5, OtherFront: 9, OtherBack: 9}}, false},
		{"front gap equals look-ahead", Car{Velocity: 2, Gaps: Gaps{SameFront: 3, OtherFront: 9, OtherBack: 9}}, false},
		{"other front not strictly larger", Car{Velocity: 2, Gaps: Gaps{SameFront: 0, OtherFront: 3, OtherBack: 9}}, false},
		{"other back equals vmax", Car{Velocity: 0, Gaps: Gaps{SameFront: 0, OtherFront: 9, OtherBack: 5}}, false},
		{"alongside car in other lane", Car{Velocity: 0, Gaps: Gaps{SameFront: 0, OtherFront: -1, OtherBack: 9}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wantsLaneChange(tt.car, 5))
		})
	}
}

// blockedLayout puts car 0 directly behind car 1 on lane 0 with an empty lane 1.
func blockedLayout() []Car {
	return []Car{
		{Lane: LaneLeft, Position: 0, Velocity: 1},
		{Lane: LaneLeft, Position: 1, Velocity: 1},
	}
}

func TestChangeLanes_CertainChange_MovesBlockedCar(t *testing.T) {
	// GIVEN change_prob = 1 and a blocked car
	cfg := deterministicConfig(20, 5, 2)
	cfg.ChangeProb = 1
	s := newPlacedSimulator(t, cfg, blockedLayout())

	// WHEN lane changes run
	changes, err := s.ChangeLanes()

	// THEN only the blocked car moved, and gaps were re-resolved
	require.NoError(t, err)
	assert.Equal(t, 1, changes)
	assert.Equal(t, LaneRight, s.Road().Car(0).Lane)
	assert.Equal(t, LaneLeft, s.Road().Car(1).Lane)
	assert.Equal(t, 20, s.Road().Car(0).Gaps.SameFront, "car 0 is now alone on lane 1")
	assert.Equal(t, 0, s.Road().Car(0).Gaps.OtherFront, "car 1 is diagonally ahead")
	requireSettled(t, s)
}

func TestChangeLanes_ZeroProbability_NeverChanges(t *testing.T) {
	// GIVEN change_prob = 0 and a blocked car
	s := newPlacedSimulator(t, deterministicConfig(20, 5, 2), blockedLayout())

	// WHEN lane changes run many times
	for i := 0; i < 100; i++ {
		changes, err := s.ChangeLanes()
		require.NoError(t, err)
		require.Zero(t, changes)
	}

	// THEN nobody moved
	assert.Equal(t, LaneLeft, s.Road().Car(0).Lane)
}

func TestChangeLanes_IsSymmetricAcrossLanes(t *testing.T) {
	// GIVEN the blocked layout mirrored onto lane 1
	cfg := deterministicConfig(20, 5, 2)
	cfg.ChangeProb = 1
	cars := blockedLayout()
	for i := range cars {
		cars[i].Lane = LaneRight
	}
	s := newPlacedSimulator(t, cfg, cars)

	// WHEN lane changes run
	changes, err := s.ChangeLanes()

	// THEN the rule applies from lane 1 to lane 0 as well
	require.NoError(t, err)
	assert.Equal(t, 1, changes)
	assert.Equal(t, LaneLeft, s.Road().Car(0).Lane)
}

func TestChangeLanes_RearTrafficBlocksChange(t *testing.T) {
	// GIVEN a blocked car with a lane-1 car vmax cells behind its cell
	cfg := deterministicConfig(20, 5, 4)
	cfg.ChangeProb = 1
	s := newPlacedSimulator(t, cfg, []Car{
		{Lane: LaneLeft, Position: 10, Velocity: 1},
		{Lane: LaneLeft, Position: 11, Velocity: 1},
		{Lane: LaneRight, Position: 4, Velocity: 0}, // 5 empty cells behind cell 10
		{Lane: LaneRight, Position: 0, Velocity: 0},
	})

	// WHEN lane changes run
	changes, err := s.ChangeLanes()

	// THEN the change is refused (other_back must exceed vmax)
	require.NoError(t, err)
	assert.Zero(t, changes)
	assert.Equal(t, LaneLeft, s.Road().Car(0).Lane)
}

func TestChangeLanes_Sequential_LaterCarsSeeEarlierMoves(t *testing.T) {
	// GIVEN a full lane 0 on a 4-cell road and an empty lane 1
	cfg := deterministicConfig(4, 2, 4)
	cfg.ChangeProb = 1
	full := []Car{
		{Lane: LaneLeft, Position: 0, Velocity: 1},
		{Lane: LaneLeft, Position: 1, Velocity: 1},
		{Lane: LaneLeft, Position: 2, Velocity: 1},
		{Lane: LaneLeft, Position: 3, Velocity: 1},
	}
	s := newPlacedSimulator(t, cfg, full)

	// WHEN lane changes run sequentially
	changes, err := s.ChangeLanes()

	// THEN only car 0 escapes: its move closes the gap for everyone after it
	require.NoError(t, err)
	assert.Equal(t, 1, changes)
	assert.Equal(t, []Lane{LaneRight, LaneLeft, LaneLeft, LaneLeft}, lanesOf(s.Road()))
	requireSettled(t, s)
}

func TestChangeLanes_Simultaneous_AllDecideFromSnapshot(t *testing.T) {
	// GIVEN the same full lane under the simultaneous policy
	cfg := deterministicConfig(4, 2, 4)
	cfg.ChangeProb = 1
	cfg.LaneChangePolicy = LaneChangeSimultaneous
	s := newPlacedSimulator(t, cfg, []Car{
		{Lane: LaneLeft, Position: 0, Velocity: 1},
		{Lane: LaneLeft, Position: 1, Velocity: 1},
		{Lane: LaneLeft, Position: 2, Velocity: 1},
		{Lane: LaneLeft, Position: 3, Velocity: 1},
	})

	// WHEN lane changes run
	changes, err := s.ChangeLanes()

	// THEN every car saw an empty lane 1 and moved together
	require.NoError(t, err)
	assert.Equal(t, 4, changes)
	assert.Equal(t, []Lane{LaneRight, LaneRight, LaneRight, LaneRight}, lanesOf(s.Road()))
	requireSettled(t, s)
}

func TestChangeLanes_TraceRecordsDecision(t *testing.T) {
	// GIVEN decision tracing
	cfg := deterministicConfig(20, 5, 2)
	cfg.ChangeProb = 1
	cfg.TraceLevel = string(trace.TraceLevelDecisions)
	s := newPlacedSimulator(t, cfg, blockedLayout())

	// WHEN lane changes run
	_, err := s.ChangeLanes()
	require.NoError(t, err)

	// THEN the record carries the pre-change state
	require.NotNil(t, s.Trace)
	require.Len(t, s.Trace.LaneChanges, 1)
	rec := s.Trace.LaneChanges[0]
	assert.Equal(t, trace.LaneChangeRecord{
		Step: 0, Car: 0, From: 0, To: 1, Position: 0, Velocity: 1,
		SameFront: 0, OtherFront: 20, OtherBack: 20,
	}, rec)
}

func lanesOf(r *Road) []Lane {
	out := make([]Lane, r.Len())
	for i := range out {
		out[i] = r.Car(i).Lane
	}
	return out
}
