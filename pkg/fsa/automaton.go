// Package fsa implements a non-deterministic finite-state automaton over
// 8-bit byte streams: a labeled transition graph whose transitions
// consume either one byte matched against a byteclass.Class or no input
// (epsilon), plus three ways to drive it — greedy, streaming, and
// backtracking.
package fsa

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/statewalk/fsa/pkg/byteclass"
)

// Automaton owns a transition graph and the mutable execution state of
// one in-flight validation. It is not safe for concurrent use: spec.md
// §5 requires distinct instances or external mutual exclusion per
// concurrent caller.
type Automaton struct {
	id   string
	name string

	states           map[StateID]*State
	nextStateID      uint32
	transitions      []*Transition
	nextTransitionID uint32

	index      map[StateID][]*Transition
	indexDirty bool

	start  StateID
	accept map[StateID]struct{}

	maxBacktrackDepth int
	userData          any

	debug DebugConfig
	prom  *promCollector

	exec execState
}

// execState is the per-run observable model shared by every driver
// (spec.md §3's "Execution state").
type execState struct {
	current   StateID
	input     []byte
	pos       int
	completed []CaptureGroup
	active    []*activeCapture

	streamStatus  StreamStatus
	streamStarted bool

	choiceStack []*ChoicePoint
	btStats     BacktrackStats

	lastErr *Error
	trace   []TraceEntry
	metrics Metrics
}

// Option configures an Automaton at construction time.
type Option func(*Automaton)

// WithName sets the automaton's diagnostic name.
func WithName(name string) Option {
	return func(a *Automaton) { a.name = name }
}

// WithID overrides the default UUID-derived diagnostic identifier.
func WithID(id string) Option {
	return func(a *Automaton) { a.id = id }
}

// WithLogger installs the output stream sink of spec.md §6.
func WithLogger(l Logger) Option {
	return func(a *Automaton) { a.debug.Logger = l }
}

// WithDebugFlags sets the initial debug bitmap.
func WithDebugFlags(f DebugFlag) Option {
	return func(a *Automaton) { a.debug.Flags = f }
}

// WithMaxBacktrackDepth bounds the backtracking choice-point stack
// (spec.md §4.7's "optional maximum stack depth"). Zero means unbounded.
func WithMaxBacktrackDepth(n int) Option {
	return func(a *Automaton) { a.maxBacktrackDepth = n }
}

// WithUserData installs the opaque handle hooks can read via
// HookContext.UserData.
func WithUserData(v any) Option {
	return func(a *Automaton) { a.userData = v }
}

// New constructs an empty automaton (spec.md §6's "construct an empty
// automaton, optionally with an identifier and a name").
func New(opts ...Option) *Automaton {
	a := &Automaton{
		id:     uuid.NewString(),
		states: make(map[StateID]*State),
		accept: make(map[StateID]struct{}),
		index:  make(map[StateID][]*Transition),
	}
	a.debug.Logger = NopLogger()
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the automaton's diagnostic identifier.
func (a *Automaton) ID() string { return a.id }

// Name returns the automaton's diagnostic name.
func (a *Automaton) Name() string { return a.name }

// AddState creates a fresh state with a monotonically increasing numeric
// id starting at 1 (spec.md §4.2) and returns its StateID.
func (a *Automaton) AddState(name string, role Role) StateID {
	a.nextStateID++
	id := StateID(a.nextStateID)
	a.states[id] = &State{ID: id, Name: name, Role: role}
	return id
}

// mustHaveState panics if id does not reference a live state — the
// spec.md §7 "unknown state reference" programmer error, raised whenever
// the caller is trusted Go code driving the API directly.
func (a *Automaton) mustHaveState(id StateID) *State {
	s, ok := a.states[id]
	if !ok {
		panic(errors.Errorf("fsa: unknown state %d", id))
	}
	return s
}

// SetStart designates id as the automaton's single start state.
func (a *Automaton) SetStart(id StateID) {
	a.mustHaveState(id)
	a.start = id
}

// Start returns the current start state, or the zero StateID if unset.
func (a *Automaton) Start() StateID { return a.start }

// AddAcceptState adds id to the accept set.
func (a *Automaton) AddAcceptState(id StateID) {
	a.mustHaveState(id)
	a.accept[id] = struct{}{}
}

// RemoveAcceptState removes id from the accept set, if present.
func (a *Automaton) RemoveAcceptState(id StateID) {
	delete(a.accept, id)
}

// IsAccept reports whether id is currently an accept state.
func (a *Automaton) IsAccept(id StateID) bool {
	_, ok := a.accept[id]
	return ok
}

// MarkChoicePoint flags id so backtracking always opens a choice point
// there when any transition matches (spec.md §4.7 rule (a)).
func (a *Automaton) MarkChoicePoint(id StateID) {
	a.mustHaveState(id).ChoicePoint = true
}

// SetStateEntryHook / SetStateExitHook install per-state hooks.
func (a *Automaton) SetStateEntryHook(id StateID, h Hook) {
	a.mustHaveState(id).OnEntry = h
}

func (a *Automaton) SetStateExitHook(id StateID, h Hook) {
	a.mustHaveState(id).OnExit = h
}

// AddClassTransition adds a byte-matching edge.
func (a *Automaton) AddClassTransition(from, to StateID, class byteclass.Class, priority int, desc string) TransitionID {
	return a.addTransition(from, to, KindClass, class, nil, priority, desc)
}

// AddEpsilonTransition adds a no-input edge.
func (a *Automaton) AddEpsilonTransition(from, to StateID, priority int, desc string) TransitionID {
	return a.addTransition(from, to, KindEpsilon, byteclass.Class{}, nil, priority, desc)
}

// AddSubTransition references a sub-automaton along (from, to). Per
// spec.md §4.3/§9 the driver never executes a KindSub transition
// directly — Merge must expand it into KindClass/KindEpsilon before
// validation. The drivers match only KindClass and KindEpsilon
// transitions, so a KindSub transition left unexpanded is ignored as if
// it were absent; no error is reported for it.
func (a *Automaton) AddSubTransition(from, to StateID, sub *Automaton, priority int, desc string) TransitionID {
	return a.addTransition(from, to, KindSub, byteclass.Class{}, sub, priority, desc)
}

func (a *Automaton) addTransition(from, to StateID, kind Kind, class byteclass.Class, sub *Automaton, priority int, desc string) TransitionID {
	a.mustHaveState(from)
	a.mustHaveState(to)
	a.nextTransitionID++
	id := TransitionID(a.nextTransitionID)
	t := &Transition{ID: id, From: from, To: to, Kind: kind, Class: class, Sub: sub, Priority: priority, Description: desc}
	a.transitions = append(a.transitions, t)
	a.indexDirty = true
	return id
}

// SetTransitionHook installs the per-transition hook for tid.
func (a *Automaton) SetTransitionHook(tid TransitionID, h Hook) {
	for _, t := range a.transitions {
		if t.ID == tid {
			t.Hook = h
			return
		}
	}
	panic(errors.Errorf("fsa: unknown transition %d", tid))
}

// rebuildIndex sorts each state's outgoing transitions by descending
// priority, ties broken by insertion order (spec.md §4.2). Go's
// sort.SliceStable preserves the relative order of the underlying
// transitions slice — which is itself insertion-ordered — for equal
// keys, giving the required tie-break for free.
func (a *Automaton) rebuildIndex() {
	if !a.indexDirty {
		return
	}
	idx := make(map[StateID][]*Transition, len(a.states))
	for _, t := range a.transitions {
		idx[t.From] = append(idx[t.From], t)
	}
	for from, ts := range idx {
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Priority > ts[j].Priority })
		idx[from] = ts
	}
	a.index = idx
	a.indexDirty = false
}

// OutgoingTransitions returns the transitions leaving id in priority
// order, rebuilding the derived index first if it is stale.
func (a *Automaton) OutgoingTransitions(id StateID) []*Transition {
	a.rebuildIndex()
	ts := a.index[id]
	out := make([]*Transition, len(ts))
	copy(out, ts)
	return out
}

// States returns every state, in ascending id order.
func (a *Automaton) States() []*State {
	out := make([]*State, 0, len(a.states))
	for _, s := range a.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Transitions returns every transition, in insertion order.
func (a *Automaton) Transitions() []*Transition {
	out := make([]*Transition, len(a.transitions))
	copy(out, a.transitions)
	return out
}

// StateCount and TransitionCount are the introspection counts of
// spec.md §6.
func (a *Automaton) StateCount() int      { return len(a.states) }
func (a *Automaton) TransitionCount() int { return len(a.transitions) }

// State looks up a state by id.
func (a *Automaton) State(id StateID) (*State, bool) {
	s, ok := a.states[id]
	return s, ok
}

// LastError returns the error recorded by the most recent failed
// validation call, or nil.
func (a *Automaton) LastError() *Error { return a.exec.lastErr }

// Reset clears all execution state: position, current state, captures,
// choice stack, trace, metrics, and last error. It never touches graph
// structure, so a reset automaton can be validated again immediately.
func (a *Automaton) Reset() {
	a.exec = execState{current: a.start, streamStatus: StatusReady}
	if s := a.states[a.start]; s != nil && s.OnEntry != nil {
		s.OnEntry(&HookContext{Position: 0, Byte: 0, Epsilon: true, a: a})
	}
}
