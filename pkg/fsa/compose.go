package fsa

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Merge inlines sub into host along the edge (from, to): sub's start
// state maps onto from, every accept state of sub maps onto to, and
// every other state of sub is cloned into host as a fresh Normal state.
// Every transition of sub is re-emitted against the mapped states,
// preserving kind, priority, description, and hooks; nested KindSub
// transitions recurse. It returns the new transition ids created in
// host (spec.md §4.3).
//
// Merge is structural only. Run-time use of an un-merged KindSub
// transition by a driver is undefined by spec.md §5/§9 — AddSubTransition
// exists so callers can build a graph incrementally, but validation must
// only ever see a graph where Merge has already expanded every KindSub
// edge into KindClass/KindEpsilon.
func Merge(host *Automaton, from, to StateID, sub *Automaton) ([]TransitionID, error) {
	host.mustHaveState(from)
	host.mustHaveState(to)
	if sub == nil {
		return nil, errors.New("fsa: merge requires a non-nil sub-automaton")
	}
	if !sub.start.Valid() {
		return nil, errors.Wrapf(&Error{Kind: NoStartState, Message: "sub-automaton has no start state"}, "merge into (%d,%d)", from, to)
	}

	mapping := map[StateID]StateID{sub.start: from}
	for accept := range sub.accept {
		mapping[accept] = to
	}
	for _, s := range sub.States() {
		if _, mapped := mapping[s.ID]; mapped {
			continue
		}
		newName := cloneName(host, sub, from, to, s)
		clone := host.AddState(newName, RoleNormal)
		host.states[clone].OnEntry = s.OnEntry
		host.states[clone].OnExit = s.OnExit
		mapping[s.ID] = clone
	}

	var newIDs []TransitionID
	for _, t := range sub.transitions {
		mf, mt := mapping[t.From], mapping[t.To]
		switch t.Kind {
		case KindClass:
			id := host.AddClassTransition(mf, mt, t.Class, t.Priority, t.Description)
			host.SetTransitionHook(id, t.Hook)
			newIDs = append(newIDs, id)
		case KindEpsilon:
			id := host.AddEpsilonTransition(mf, mt, t.Priority, t.Description)
			host.SetTransitionHook(id, t.Hook)
			newIDs = append(newIDs, id)
		case KindSub:
			nested, err := Merge(host, mf, mt, t.Sub)
			if err != nil {
				return nil, errors.Wrapf(err, "merge nested sub-automaton at (%d,%d)", mf, mt)
			}
			newIDs = append(newIDs, nested...)
		}
	}
	host.indexDirty = true
	host.rebuildIndex()
	return newIDs, nil
}

// cloneName derives a collision-free display name for a state cloned
// from sub into host: the merge site and a short content hash keep
// repeated merges of the same sub-automaton from producing duplicate
// names.
func cloneName(host, sub *Automaton, from, to StateID, s *State) string {
	base := s.Name
	if base == "" {
		base = fmt.Sprintf("s%d", s.ID)
	}
	sum := xxhash.Sum64String(fmt.Sprintf("%s|%d|%d|%d|%d", sub.id, from, to, s.ID, host.nextStateID))
	return fmt.Sprintf("%s.%s#%08x", sub.name, base, uint32(sum))
}
