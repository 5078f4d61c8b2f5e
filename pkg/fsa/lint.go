package fsa

import "strconv"

// LintFinding is a structural diagnostic distinct from a run's Error —
// it describes a property of the graph itself, not of one validation
// (spec.md §7's optional AmbiguousTransition/UnreachableStates kinds,
// grounded on original_source/Fsm's ValidateStructure per SPEC_FULL.md
// §4).
type LintFinding struct {
	Kind    ErrorKind
	State   StateID
	Message string
}

// Lint runs the optional structural checks: states unreachable from the
// start state, and pairs of equal-priority class-kind transitions from
// the same state whose byte classes overlap.
func (a *Automaton) Lint() []LintFinding {
	var findings []LintFinding
	findings = append(findings, a.lintUnreachable()...)
	findings = append(findings, a.lintAmbiguous()...)
	return findings
}

func (a *Automaton) lintUnreachable() []LintFinding {
	if !a.start.Valid() {
		return nil
	}
	reachable := map[StateID]bool{a.start: true}
	queue := []StateID{a.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range a.OutgoingTransitions(cur) {
			if !reachable[t.To] {
				reachable[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}
	var findings []LintFinding
	for _, s := range a.States() {
		if !reachable[s.ID] {
			findings = append(findings, LintFinding{Kind: UnreachableStates, State: s.ID, Message: "state is not reachable from the start state"})
		}
	}
	return findings
}

func (a *Automaton) lintAmbiguous() []LintFinding {
	var findings []LintFinding
	for _, s := range a.States() {
		ts := a.OutgoingTransitions(s.ID)
		for i := 0; i < len(ts); i++ {
			if ts[i].Kind != KindClass {
				continue
			}
			for j := i + 1; j < len(ts); j++ {
				if ts[j].Kind != KindClass || ts[j].Priority != ts[i].Priority {
					continue
				}
				if !ts[i].Class.Intersect(ts[j].Class).IsEmpty() {
					findings = append(findings, LintFinding{
						Kind:  AmbiguousTransition,
						State: s.ID,
						Message: "transitions " + fmtID(ts[i].ID) + " and " + fmtID(ts[j].ID) +
							" share priority and overlap on at least one byte",
					})
				}
			}
		}
	}
	return findings
}

func fmtID(id TransitionID) string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
