package fsa

import "github.com/statewalk/fsa/pkg/byteclass"

// Priority anchors. Higher runs first; these five values are the
// reserved semantic anchors named in spec.md §3.
const (
	PriorityLowest  = 0
	PriorityLow     = 25
	PriorityNormal  = 50
	PriorityHigh    = 75
	PriorityHighest = 100
)

// Kind distinguishes what a Transition consumes.
type Kind int

const (
	// KindClass consumes one byte matched against a byteclass.Class.
	KindClass Kind = iota
	// KindEpsilon consumes no input.
	KindEpsilon
	// KindSub references a sub-automaton. Spec.md §4.3/§9: the only
	// sound semantics is pre-composition — Merge rewrites every KindSub
	// transition into KindClass/KindEpsilon before a driver ever runs.
	// A KindSub transition reaching a driver unexpanded is a structural
	// bug in the caller, not a runtime condition; see automaton.go.
	KindSub
)

// Transition is a labeled edge in the automaton graph.
type Transition struct {
	ID          TransitionID
	From, To    StateID
	Kind        Kind
	Class       byteclass.Class
	Sub         *Automaton
	Priority    int
	Description string
	Hook        Hook
}

// Matches reports whether a class-kind transition admits b. Non-class
// transitions never match a byte.
func (t *Transition) Matches(b byte) bool {
	return t.Kind == KindClass && t.Class.Contains(b)
}
