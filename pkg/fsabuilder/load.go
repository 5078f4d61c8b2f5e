package fsabuilder

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/statewalk/fsa/pkg/fsa"
)

// LoadYAML parses r as a Config and resolves it into an *fsa.Automaton.
// Unlike Builder's fluent methods, every failure here — a malformed
// document, a class specification with the wrong shape, a transition
// naming a state that was never declared — is returned, never panicked:
// the document did not come from a trusted Go call site.
func LoadYAML(r io.Reader, opts ...fsa.Option) (*fsa.Automaton, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "fsabuilder: decode config")
	}
	return FromConfig(&cfg, opts...)
}

// FromConfig resolves an already-parsed Config into an automaton, in the
// same untrusted-data, error-returning spirit as LoadYAML.
func FromConfig(cfg *Config, opts ...fsa.Option) (*fsa.Automaton, error) {
	allOpts := append([]fsa.Option{fsa.WithName(cfg.Name)}, opts...)
	if flags, err := parseDebugFlags(cfg.DebugFlags); err != nil {
		return nil, err
	} else if flags != 0 {
		allOpts = append(allOpts, fsa.WithDebugFlags(flags))
	}
	if cfg.MaxBacktrackDepth > 0 {
		allOpts = append(allOpts, fsa.WithMaxBacktrackDepth(cfg.MaxBacktrackDepth))
	}

	a := fsa.New(allOpts...)
	byName := make(map[string]fsa.StateID, len(cfg.States))

	for _, sc := range cfg.States {
		if _, exists := byName[sc.Name]; exists {
			return nil, errors.Wrapf(fsa.NewInvalidStateError(sc.Name), "duplicate state name")
		}
		role, err := parseRole(sc.Role)
		if err != nil {
			return nil, errors.Wrapf(err, "state %q", sc.Name)
		}
		id := a.AddState(sc.Name, role)
		byName[sc.Name] = id
		switch role {
		case fsa.RoleStart:
			a.SetStart(id)
		case fsa.RoleAccept:
			a.AddAcceptState(id)
		}
		if sc.ChoicePoint {
			a.MarkChoicePoint(id)
		}
	}

	for i, tc := range cfg.Transitions {
		fromID, ok := byName[tc.From]
		if !ok {
			return nil, errors.Wrapf(fsa.NewInvalidTransitionError(tc.From, tc.To), "transition %d: unknown source state %q", i, tc.From)
		}
		toID, ok := byName[tc.To]
		if !ok {
			return nil, errors.Wrapf(fsa.NewInvalidTransitionError(tc.From, tc.To), "transition %d: unknown destination state %q", i, tc.To)
		}
		switch strings.ToLower(tc.Kind) {
		case "", "class":
			cls, err := resolveClass(tc.Class)
			if err != nil {
				return nil, errors.Wrapf(err, "transition %d (%s -> %s)", i, tc.From, tc.To)
			}
			a.AddClassTransition(fromID, toID, cls, tc.Priority, tc.Description)
		case "epsilon":
			a.AddEpsilonTransition(fromID, toID, tc.Priority, tc.Description)
		default:
			return nil, errors.Errorf("transition %d (%s -> %s): unknown kind %q", i, tc.From, tc.To, tc.Kind)
		}
	}

	return a, nil
}

func parseRole(s string) (fsa.Role, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return fsa.RoleNormal, nil
	case "start":
		return fsa.RoleStart, nil
	case "accept":
		return fsa.RoleAccept, nil
	case "error":
		return fsa.RoleError, nil
	default:
		return fsa.RoleNormal, errors.Errorf("unknown role %q", s)
	}
}

func parseDebugFlags(names []string) (fsa.DebugFlag, error) {
	var out fsa.DebugFlag
	for _, n := range names {
		switch strings.ToLower(n) {
		case "trace_transitions":
			out |= fsa.TraceTransitions
		case "trace_state_changes":
			out |= fsa.TraceStateChanges
		case "verbose_errors":
			out |= fsa.VerboseErrors
		case "collect_metrics":
			out |= fsa.CollectMetrics
		case "export_dot_on_error":
			out |= fsa.ExportDotOnError
		case "basic":
			out |= fsa.Basic
		case "full":
			out |= fsa.Full
		default:
			return 0, errors.Errorf("unknown debug flag %q", n)
		}
	}
	return out, nil
}
