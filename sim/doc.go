// Package sim provides the two-lane cellular-automaton traffic engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - car.go / road.go: Car state, lane tags and the fixed-length Road container
//   - neighbors.go: the Neighbor Resolver (four circular gaps per car)
//   - simulator.go: the step loop (lane change → velocity update → advance)
//
// # Step Phases
//
// Each step runs three phases in order:
//   - lane_change.go: symmetric, gap-driven, stochastic lane changes
//   - velocity.go: acceleration, collision-avoidance clamp, random slowdown
//   - advance.go: move every car by its velocity modulo the road length
//
// Neighbors are re-resolved after placement, after each accepted lane change
// (sequential policy) and after every advance.
//
// # Randomness
//
// All draws come from a PartitionedRNG seeded once per run from a SimulationKey
// (see rng.go). Two simulators built from the same Config produce identical
// trajectories.
//
// Sub-packages:
//   - sim/trace/: lane-change decision trace
//   - sim/render/: fixed-width console projection of both lanes
package sim
