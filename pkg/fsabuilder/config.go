// Package fsabuilder is the symbolic collaborator of spec.md §1/§6: it
// resolves human-readable state and class names into an fsa.Automaton
// instead of requiring a caller to juggle fsa.StateID values by hand, and
// it can load that graph from a YAML document.
//
// A Config handed to LoadYAML or FromConfig is untrusted data, not a
// trusted Go call site, so every failure there is an ordinary returned
// error (an unresolved state name wraps an *fsa.Error of Kind
// InvalidState/InvalidTransition), never a panic. Builder, by contrast, is
// driven by trusted Go code and panics on an unresolved or duplicate name,
// the same posture fsa takes toward programmer errors.
package fsabuilder

// Config is the on-disk shape of a symbolic automaton definition.
type Config struct {
	Name              string           `yaml:"name"`
	MaxBacktrackDepth int              `yaml:"max_backtrack_depth,omitempty"`
	DebugFlags        []string         `yaml:"debug_flags,omitempty"`
	States            []StateConfig    `yaml:"states"`
	Transitions       []TransitionConfig `yaml:"transitions"`
}

// StateConfig describes one named state.
type StateConfig struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role,omitempty"` // "start", "accept", "error", or omitted for normal
	ChoicePoint bool   `yaml:"choice_point,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// TransitionConfig describes one edge by the names of its endpoints.
type TransitionConfig struct {
	From        string      `yaml:"from"`
	To          string      `yaml:"to"`
	Kind        string      `yaml:"kind,omitempty"` // "class" (default) or "epsilon"
	Class       *ClassConfig `yaml:"class,omitempty"`
	Priority    int         `yaml:"priority,omitempty"`
	Description string      `yaml:"description,omitempty"`
}

// ClassConfig describes a byteclass.Class algebraically, so a YAML author
// can reach every core rule and every set-algebra operation fsa exposes
// without writing Go.
type ClassConfig struct {
	Rule       string        `yaml:"rule,omitempty"`   // one of the core rule names, e.g. "DIGIT"
	Bytes      []int         `yaml:"bytes,omitempty"`  // literal byte values, 0-255
	Range      *[2]int       `yaml:"range,omitempty"`  // [lo, hi] inclusive
	Union      []ClassConfig `yaml:"union,omitempty"`
	Intersect  []ClassConfig `yaml:"intersect,omitempty"`
	Complement *ClassConfig  `yaml:"complement,omitempty"`
}
