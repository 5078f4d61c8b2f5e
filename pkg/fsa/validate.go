package fsa

import "time"

// Validate runs the deterministic greedy driver of spec.md §4.4 over the
// whole input and reports acceptance. It always starts from a fresh
// execution state, as if Reset had just been called.
func (a *Automaton) Validate(input []byte) (bool, error) {
	if !a.start.Valid() {
		return false, a.failNoStart()
	}
	a.Reset()
	a.exec.input = input

	start := time.Now()
	for i := 0; i < len(input); i++ {
		b := input[i]
		t := a.selectTransition(a.exec.current, b)
		if t == nil {
			err := a.newError(NoMatchingTransition, i, b, a.exec.current, "", nil)
			a.exec.lastErr = err
			a.maybeExportOnError()
			return false, err
		}
		a.commit(t, i, b)
	}
	if err := a.epsilonClosure(len(input)); err != nil {
		a.exec.lastErr = err
		return false, err
	}
	a.recordValidationTime(start)
	if !a.IsAccept(a.exec.current) {
		err := a.newError(NotInAcceptState, len(input), 0, a.exec.current, "", nil)
		a.exec.lastErr = err
		a.maybeExportOnError()
		return false, err
	}
	return true, nil
}

// selectTransition returns the highest-priority class-kind transition
// from `from` whose predicate matches b, or nil (spec.md §4.4.a).
func (a *Automaton) selectTransition(from StateID, b byte) *Transition {
	for _, t := range a.OutgoingTransitions(from) {
		if t.Kind == KindClass && t.Class.Contains(b) {
			return t
		}
	}
	return nil
}

// matchingTransitions returns every class-kind transition from `from`
// admitting b, in descending-priority order — the V of spec.md §4.7.
func (a *Automaton) matchingTransitions(from StateID, b byte) []*Transition {
	var out []*Transition
	for _, t := range a.OutgoingTransitions(from) {
		if t.Kind == KindClass && t.Class.Contains(b) {
			out = append(out, t)
		}
	}
	return out
}

// commit fires hooks, appends to captures, advances position, and
// updates counters for a single committed consuming transition
// (spec.md §4.4.b/c, §5's ordering guarantee).
func (a *Automaton) commit(t *Transition, pos int, b byte) {
	from, to := a.exec.current, t.To
	if from != to {
		fireTransitionHooks(a, t, from, to, pos, b, false)
	}
	a.exec.current = to
	a.appendToActive(b)
	a.exec.pos = pos + 1
	if a.debug.Flags.Has(CollectMetrics) {
		a.exec.metrics.TransitionsTaken++
		a.exec.metrics.CharactersProcessed++
		if from != to {
			a.exec.metrics.StatesEntered++
		}
	}
	a.trace(pos, from, to, b, false, t.ID, t.Description)
}

// epsilonClosure repeatedly follows outgoing epsilon transitions from the
// current state, using a visited set local to this call to guarantee
// termination through cycles (spec.md §4.6, §8 property 7).
func (a *Automaton) epsilonClosure(pos int) *Error {
	visited := map[StateID]bool{a.exec.current: true}
	steps := 0
	maxSteps := len(a.states) + 1
	for {
		if steps > maxSteps {
			// Defensive only: the visited set makes this unreachable
			// for a well-formed graph, but a corrupt index (e.g. built
			// through unsafe concurrent mutation) must not spin forever.
			return a.newError(EmbeddedFsmFailed, pos, 0, a.exec.current, "epsilon closure did not terminate", nil)
		}
		steps++
		next, t := a.firstUnvisitedEpsilon(a.exec.current, visited)
		if t == nil {
			return nil
		}
		from := a.exec.current
		fireTransitionHooks(a, t, from, next, pos, 0, true)
		a.exec.current = next
		visited[next] = true
		if a.debug.Flags.Has(CollectMetrics) {
			a.exec.metrics.EpsilonTransitions++
			a.exec.metrics.StatesEntered++
		}
		a.trace(pos, from, next, 0, true, t.ID, t.Description)
	}
}

func (a *Automaton) firstUnvisitedEpsilon(from StateID, visited map[StateID]bool) (StateID, *Transition) {
	for _, t := range a.OutgoingTransitions(from) {
		if t.Kind == KindEpsilon && !visited[t.To] {
			return t.To, t
		}
	}
	return 0, nil
}

func (a *Automaton) failNoStart() error {
	err := a.newError(NoStartState, 0, 0, 0, "no start state bound", nil)
	a.exec.lastErr = err
	return err
}

func (a *Automaton) recordValidationTime(start time.Time) {
	if a.debug.Flags.Has(CollectMetrics) {
		a.exec.metrics.ValidationTime = time.Since(start)
	}
}

func (a *Automaton) maybeExportOnError() {
	if a.debug.Flags.Has(ExportDotOnError) && a.debug.Logger != nil {
		_ = a.debug.Logger.Log("msg", "validation failed, dot export follows", "dot", a.ExportDOT())
	}
}
