package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemLaneChange).Float64()
		v2 := rng2.ForSubsystem(SubsystemLaneChange).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from lane_change doesn't shift the deceleration stream
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemLaneChange).Float64()
	}
	for i := 0; i < 5; i++ {
		rngB.ForSubsystem(SubsystemDeceleration).Float64()
	}

	// A's deceleration stream is untouched: first draw equals a fresh first draw
	aDecelFirst := rngA.ForSubsystem(SubsystemDeceleration).Float64()
	bDecelSixth := rngB.ForSubsystem(SubsystemDeceleration).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemDeceleration).Float64()

	if aDecelFirst != expectedFirst {
		t.Errorf("A's deceleration first value = %v, want %v (isolation broken)", aDecelFirst, expectedFirst)
	}
	if bDecelSixth == expectedFirst {
		t.Error("B's 6th deceleration value equals 1st value - unexpected")
	}
}

func TestPartitionedRNG_PlacementUsesMasterSeed(t *testing.T) {
	// BDD: "placement" subsystem uses master seed directly
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	placement := rng.ForSubsystem(SubsystemPlacement)
	direct := newRandFromSeed(seed)

	for i := 0; i < 10; i++ {
		got := placement.Float64()
		want := direct.Float64()
		if got != want {
			t.Errorf("Value %d: placement RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemPlacement)
	rng2 := rng.ForSubsystem(SubsystemPlacement)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	// BDD: MinInt64 seed works correctly
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	decel := rng.ForSubsystem(SubsystemDeceleration)
	if decel == nil {
		t.Fatal("ForSubsystem returned nil with MinInt64 seed")
	}

	val := decel.Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Subsystems map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemLaneChange)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Collision(t *testing.T) {
	// Different subsystem names should produce different hashes (spot check)
	names := []string{
		SubsystemPlacement,
		SubsystemLaneChange,
		SubsystemDeceleration,
		"",
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemDeceleration)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemDeceleration)
	}
}
