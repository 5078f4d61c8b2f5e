package fsa

import "time"

// DebugFlag is a bitmap of optional observability behaviors (spec.md §6).
// They are purely additive and never influence acceptance.
type DebugFlag uint8

const (
	TraceTransitions DebugFlag = 1 << iota
	TraceStateChanges
	VerboseErrors
	CollectMetrics
	ExportDotOnError
)

// Convenience groupings mirroring original_source/Fsm's DebugFlags::BASIC
// and ::FULL.
const (
	Basic = TraceTransitions | VerboseErrors
	Full  = TraceTransitions | TraceStateChanges | VerboseErrors | CollectMetrics
)

// Has reports whether every bit in flag is set in f.
func (f DebugFlag) Has(flag DebugFlag) bool {
	return f&flag == flag
}

// DebugConfig bundles the debug bitmap with an optional log sink.
type DebugConfig struct {
	Flags  DebugFlag
	Logger Logger
}

// TraceEntry records one committed step, kept only when TraceTransitions
// or TraceStateChanges is set.
type TraceEntry struct {
	Step         int
	From         StateID
	To           StateID
	Byte         byte
	Epsilon      bool
	TransitionID TransitionID
	Description  string
}

// Metrics are the additive counters of spec.md §2.8/§8's E3 scenario.
type Metrics struct {
	TransitionsTaken    uint64
	StatesEntered       uint64
	CharactersProcessed uint64
	EpsilonTransitions  uint64
	ValidationTime      time.Duration
}

// BacktrackStats are the monotonically increasing counters of spec.md
// §4.7/§8 property 8.
type BacktrackStats struct {
	ChoicePointsCreated uint64
	BacktracksPerformed uint64
	MaxStackDepth       uint64
	PathsExplored       uint64
}

func (a *Automaton) trace(step int, from, to StateID, b byte, epsilon bool, tid TransitionID, desc string) {
	if !a.debug.Flags.Has(TraceTransitions) && !a.debug.Flags.Has(TraceStateChanges) {
		return
	}
	if a.debug.Flags.Has(TraceStateChanges) && from == to {
		return
	}
	a.exec.trace = append(a.exec.trace, TraceEntry{
		Step: step, From: from, To: to, Byte: b, Epsilon: epsilon, TransitionID: tid, Description: desc,
	})
	if a.debug.Logger != nil {
		_ = a.debug.Logger.Log(
			"msg", "transition",
			"step", step, "from", from, "to", to, "byte", b, "epsilon", epsilon,
		)
	}
}

// Trace returns the recorded step trace, if trace collection was enabled.
func (a *Automaton) Trace() []TraceEntry {
	out := make([]TraceEntry, len(a.exec.trace))
	copy(out, a.exec.trace)
	return out
}

// MetricsSnapshot returns the counters accumulated since the last Reset,
// if CollectMetrics was enabled; otherwise it returns the zero value.
func (a *Automaton) MetricsSnapshot() Metrics {
	return a.exec.metrics
}

// BacktrackStatsSnapshot returns the backtracking counters accumulated
// since the last Reset.
func (a *Automaton) BacktrackStatsSnapshot() BacktrackStats {
	return a.exec.btStats
}
