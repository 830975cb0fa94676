// Package model holds the built-in simulation modules. Each module owns its
// streams and samples each of them at most once per timestep.
package model

import "github.com/agent-sim/agent-sim/sim"

// Stream names used by the built-in modules. Names are part of a run's identity:
// renaming a stream changes its seed offset and therefore its draws.
const (
	StreamInfectionSeed = "infection_seed"
	StreamInfection     = "infection"
	StreamRecovery      = "recovery"
	StreamDeath         = "death"
	StreamFounderSex    = "founder_sex"
	StreamPregnancy     = "pregnancy"
	StreamSlots         = "slots"
	StreamSex           = "sex"
)

// Default returns the standard module set in step order: births, then
// transmission and recovery, then deaths.
func Default(cfg sim.ModelConfig) []sim.Module {
	return []sim.Module{
		NewBirths(cfg.BirthRate),
		NewInfection(cfg.Beta, cfg.InitialPrevalence, cfg.Recovery),
		NewMortality(cfg.Mortality, cfg.InfectedMortality),
	}
}
