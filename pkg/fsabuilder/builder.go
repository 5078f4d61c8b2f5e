package fsabuilder

import (
	"github.com/pkg/errors"

	"github.com/statewalk/fsa/pkg/byteclass"
	"github.com/statewalk/fsa/pkg/fsa"
)

// Builder is the fluent, name-resolving front end onto fsa.Automaton.
// Everything the caller adds is keyed by string name; Builder maintains
// the name -> fsa.StateID table and resolves both endpoints of a
// transition as soon as it is added, so both states must already be
// declared. Class/Epsilon panic on an unresolved name rather than
// returning an error: a Builder call site is trusted Go code, the same
// posture fsa itself takes toward its own mutators.
type Builder struct {
	a      *fsa.Automaton
	byName map[string]fsa.StateID
}

// New creates an empty Builder, optionally forwarding fsa.Option values to
// the underlying automaton (WithLogger, WithPrometheus, and so on).
func New(opts ...fsa.Option) *Builder {
	return &Builder{
		a:      fsa.New(opts...),
		byName: make(map[string]fsa.StateID),
	}
}

// State declares a named state with the given role, returning the Builder
// for chaining. Declaring the same name twice is a builder misuse and
// panics, matching fsa's own posture toward trusted-caller mistakes made
// directly against the Go API.
func (b *Builder) State(name string, role fsa.Role) *Builder {
	if _, exists := b.byName[name]; exists {
		panic("fsabuilder: state " + name + " already declared")
	}
	id := b.a.AddState(name, role)
	b.byName[name] = id
	switch role {
	case fsa.RoleStart:
		b.a.SetStart(id)
	case fsa.RoleAccept:
		b.a.AddAcceptState(id)
	}
	return b
}

// ChoicePoint marks a previously declared state as a backtracking choice
// point (spec.md §4.7 rule a).
func (b *Builder) ChoicePoint(name string) *Builder {
	id, err := b.resolve(name)
	if err != nil {
		panic(err.Error())
	}
	b.a.MarkChoicePoint(id)
	return b
}

// Class adds a class-kind transition between two declared states.
func (b *Builder) Class(from, to string, class byteclass.Class, priority int, description string) *Builder {
	fromID, err := b.resolve(from)
	if err != nil {
		panic(err.Error())
	}
	toID, err := b.resolve(to)
	if err != nil {
		panic(err.Error())
	}
	b.a.AddClassTransition(fromID, toID, class, priority, description)
	return b
}

// Epsilon adds an epsilon-kind transition between two declared states.
func (b *Builder) Epsilon(from, to string, priority int, description string) *Builder {
	fromID, err := b.resolve(from)
	if err != nil {
		panic(err.Error())
	}
	toID, err := b.resolve(to)
	if err != nil {
		panic(err.Error())
	}
	b.a.AddEpsilonTransition(fromID, toID, priority, description)
	return b
}

// StateID resolves a declared name to its underlying fsa.StateID.
func (b *Builder) StateID(name string) (fsa.StateID, bool) {
	id, ok := b.byName[name]
	return id, ok
}

// Build returns the underlying automaton. The Builder remains usable
// afterward — Build takes no snapshot, it just hands back the live graph.
func (b *Builder) Build() *fsa.Automaton {
	return b.a
}

func (b *Builder) resolve(name string) (fsa.StateID, error) {
	id, ok := b.byName[name]
	if !ok {
		return 0, errors.WithStack(fsa.NewInvalidStateError(name))
	}
	return id, nil
}
