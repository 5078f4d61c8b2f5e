package fsa

// StateID identifies a state within one Automaton. Identity is purely
// numeric — spec.md's StateId pairs a numeric id with an optional
// symbolic name, but since equality and hashing depend only on the
// number, the name lives on the State record instead of the id itself.
// This is the arena/index shape spec.md §9 recommends over reference
// counted graph nodes: states and transitions live in flat slices/maps
// keyed by small integers, which is what makes backtracking snapshots
// cheap to copy.
//
// The zero value denotes "unset/invalid".
type StateID uint32

// Valid reports whether id has been assigned by an Automaton.
func (id StateID) Valid() bool {
	return id != 0
}

// TransitionID identifies a transition within one Automaton.
type TransitionID uint32
