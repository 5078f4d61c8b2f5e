package fsa

import (
	"fmt"
	"strings"
)

// ExportDOT renders the automaton as GraphViz-style directed-graph text
// (spec.md §6). Start states are filled double-circles; accept states
// are filled double-circles in a distinct color; epsilon transitions are
// labeled with the lowercase Greek epsilon.
func (a *Automaton) ExportDOT() string {
	var b strings.Builder
	name := a.name
	if name == "" {
		name = "automaton"
	}
	fmt.Fprintf(&b, "digraph %s {\n", dotID(name))
	fmt.Fprintln(&b, "  rankdir=LR;")

	for _, s := range a.States() {
		shape, style, fill := "circle", "", ""
		switch {
		case s.ID == a.start && a.IsAccept(s.ID):
			shape, style, fill = "doublecircle", "filled", "gold"
		case s.ID == a.start:
			shape, style, fill = "doublecircle", "filled", "lightblue"
		case a.IsAccept(s.ID):
			shape, style, fill = "doublecircle", "filled", "palegreen"
		}
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("state%d", s.ID)
		}
		if style != "" {
			fmt.Fprintf(&b, "  %s [label=%q shape=%s style=%s fillcolor=%s];\n", dotID(label+fmt.Sprint(s.ID)), label, shape, style, fill)
		} else {
			fmt.Fprintf(&b, "  %s [label=%q shape=%s];\n", dotID(label+fmt.Sprint(s.ID)), label, shape)
		}
	}

	for _, t := range a.transitions {
		fromLabel := stateLabel(a, t.From)
		toLabel := stateLabel(a, t.To)
		var label string
		switch t.Kind {
		case KindEpsilon:
			label = "ε"
		case KindSub:
			label = "sub"
			if t.Sub != nil {
				label = "sub:" + t.Sub.name
			}
		default:
			label = t.Class.String()
		}
		if t.Description != "" {
			label = label + " (" + t.Description + ")"
		}
		fmt.Fprintf(&b, "  %s -> %s [label=%q];\n", dotID(fromLabel), dotID(toLabel), label)
	}

	b.WriteString("}\n")
	return b.String()
}

func stateLabel(a *Automaton, id StateID) string {
	s, ok := a.states[id]
	if !ok || s.Name == "" {
		return fmt.Sprintf("state%d", id)
	}
	return s.Name + fmt.Sprint(id)
}

func dotID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
