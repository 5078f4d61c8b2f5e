package fsa

// ChoicePoint is a saved decision with the alternatives not yet tried and
// a snapshot of everything needed to resume as if the chosen alternative
// had never been taken (spec.md §3/§9).
type ChoicePoint struct {
	State     StateID
	Position  int
	Remaining []*Transition

	completedSnapshot []CaptureGroup
	activeSnapshot    []*activeCapture
}

// ValidateWithBacktracking extends the greedy driver with an explicit
// choice-point stack (spec.md §4.7). It always dominates Validate:
// whenever Validate accepts, this also accepts (spec.md §8 property 5).
//
// The spec frames end-of-input retry as a distinct step that re-runs the
// engine over the remaining input from an alternative's destination.
// Folding "no matching transition at byte i" and "input exhausted but not
// accepting" into the same backtrack() trigger — both simply pop a
// choice point, restore its snapshot, and resume from
// cp.Position+1 — makes that recursive re-run unnecessary: the same main
// loop naturally revisits the end-of-input check after any retry. This
// is a straight simplification of the algorithm, not a behavior change.
func (a *Automaton) ValidateWithBacktracking(input []byte) (bool, error) {
	if !a.start.Valid() {
		return false, a.failNoStart()
	}
	a.Reset()
	a.exec.input = input

	pos := 0
	for {
		if pos == len(input) {
			if err := a.epsilonClosure(pos); err == nil && a.IsAccept(a.exec.current) {
				return true, nil
			}
			var ok bool
			pos, ok = a.backtrack()
			if !ok {
				err := a.newError(NotInAcceptState, len(input), 0, a.exec.current, "", nil)
				a.exec.lastErr = err
				a.maybeExportOnError()
				return false, err
			}
			continue
		}

		b := input[pos]
		v := a.matchingTransitions(a.exec.current, b)
		if len(v) == 0 {
			var ok bool
			pos, ok = a.backtrack()
			if !ok {
				err := a.newError(NoMatchingTransition, pos, b, a.exec.current, "", nil)
				a.exec.lastErr = err
				a.maybeExportOnError()
				return false, err
			}
			continue
		}

		if a.shouldCreateChoicePoint(v) {
			a.pushChoicePoint(pos, v[1:])
		}
		a.commit(v[0], pos, b)
		a.exec.btStats.PathsExplored++
		pos++
	}
}

func (a *Automaton) shouldCreateChoicePoint(v []*Transition) bool {
	if len(v) > 1 {
		return true
	}
	if s := a.states[a.exec.current]; s != nil && s.ChoicePoint && len(v) >= 1 {
		return true
	}
	return false
}

func (a *Automaton) pushChoicePoint(pos int, remaining []*Transition) {
	if a.maxBacktrackDepth > 0 && len(a.exec.choiceStack) >= a.maxBacktrackDepth {
		return
	}
	completed, active := snapshotCaptures(a.exec.completed, a.exec.active)
	cp := &ChoicePoint{
		State:             a.exec.current,
		Position:          pos,
		Remaining:         append([]*Transition(nil), remaining...),
		completedSnapshot: completed,
		activeSnapshot:    active,
	}
	a.exec.choiceStack = append(a.exec.choiceStack, cp)
	a.exec.btStats.ChoicePointsCreated++
	if depth := uint64(len(a.exec.choiceStack)); depth > a.exec.btStats.MaxStackDepth {
		a.exec.btStats.MaxStackDepth = depth
	}
}

// backtrack pops choice points until one with a non-empty Remaining is
// found, restores its snapshot, takes the next alternative, and returns
// the position execution should resume from (spec.md §4.7's
// "cp.position + 1"). ok is false when the stack is exhausted.
func (a *Automaton) backtrack() (int, bool) {
	for len(a.exec.choiceStack) > 0 {
		top := len(a.exec.choiceStack) - 1
		cp := a.exec.choiceStack[top]
		if len(cp.Remaining) == 0 {
			a.exec.choiceStack = a.exec.choiceStack[:top]
			continue
		}
		alt := cp.Remaining[0]
		cp.Remaining = cp.Remaining[1:]
		if len(cp.Remaining) == 0 {
			a.exec.choiceStack = a.exec.choiceStack[:top]
		}

		a.exec.current = cp.State
		completed, active := snapshotCaptures(cp.completedSnapshot, cp.activeSnapshot)
		a.exec.completed = completed
		a.exec.active = active
		a.exec.pos = cp.Position

		a.exec.btStats.BacktracksPerformed++
		b := a.exec.input[cp.Position]
		a.commit(alt, cp.Position, b)
		a.exec.btStats.PathsExplored++
		return cp.Position + 1, true
	}
	return 0, false
}
