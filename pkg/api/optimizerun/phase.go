package optimizerun

// Phase represents one stage of an optimization run. Phases are entered in
// the order they are declared; each phase depends on the previous ones.
type Phase string

const (
	PhaseAcquiring    Phase = "acquiring"
	PhaseScanning     Phase = "scanning"
	PhaseTransforming Phase = "transforming"
	PhasePackaging    Phase = "packaging"
	PhaseDone         Phase = "done"
)

// AllPhases lists each phase of an optimization run in execution order.
func AllPhases() []Phase {
	return []Phase{PhaseAcquiring, PhaseScanning, PhaseTransforming, PhasePackaging, PhaseDone}
}
