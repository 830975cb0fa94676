// Package sim provides the fixed-step agent-based simulation engine.
//
// # Reading Guide
//
// Start with these files:
//   - simulator.go: the step loop and the Module contract
//   - config.go: RunConfig, its YAML form and validation
//   - results.go: per-step result channels
//
// # Architecture
//
// Every random decision in a run goes through a named stream from sim/streams.
// The simulator owns one streams.Registry per run and advances it once per
// step, before any module steps. Sub-packages:
//   - sim/streams/: slot-indexed and centralized random streams, the draw gate
//   - sim/people/: the population and its slot table
//   - sim/model/: built-in modules (births, infection, mortality)
//   - sim/trace/: draw trace recording and summaries
//   - sim/sweep/: concurrent multi-seed scenario sweeps and CRN comparisons
//
// # Reproducibility
//
// In multistream mode an agent's draw depends only on the run seed, the stream
// name, the timestep and the agent's slot. Two runs that differ only by an
// intervention therefore see the same random numbers for every agent the
// intervention did not touch. Centralized mode keeps end-to-end reproducibility
// per seed and gives that property up.
package sim
