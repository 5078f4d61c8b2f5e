package fsa

import "fmt"

// CaptureGroup is a named byte range accumulated between a begin/end hook
// pair (spec.md §3/§4.8).
type CaptureGroup struct {
	Name  string
	Start int
	End   int
	Bytes []byte
}

type activeCapture struct {
	name  string
	start int
	buf   []byte
}

func (a *Automaton) beginCapture(name string, pos int) {
	for _, ac := range a.exec.active {
		if ac.name == name {
			panic(fmt.Sprintf("fsa: capture %q already active", name))
		}
	}
	a.exec.active = append(a.exec.active, &activeCapture{name: name, start: pos})
}

func (a *Automaton) endCapture(name string, pos int) {
	for i, ac := range a.exec.active {
		if ac.name == name {
			cg := CaptureGroup{Name: name, Start: ac.start, End: pos, Bytes: append([]byte(nil), ac.buf...)}
			a.exec.completed = append(a.exec.completed, cg)
			a.exec.active = append(a.exec.active[:i], a.exec.active[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("fsa: no active capture %q", name))
}

// appendToActive appends a committed byte to every currently active
// capture's buffer (spec.md §4.8).
func (a *Automaton) appendToActive(b byte) {
	for _, ac := range a.exec.active {
		ac.buf = append(ac.buf, b)
	}
}

// Captures returns the completed captures in closure order.
func (a *Automaton) Captures() []CaptureGroup {
	out := make([]CaptureGroup, len(a.exec.completed))
	copy(out, a.exec.completed)
	return out
}

// snapshotCaptures deep-copies the completed and active capture lists for
// a ChoicePoint (spec.md §3/§9: "a simple clone is specification
// conformant").
func snapshotCaptures(completed []CaptureGroup, active []*activeCapture) ([]CaptureGroup, []*activeCapture) {
	c := make([]CaptureGroup, len(completed))
	copy(c, completed)
	act := make([]*activeCapture, len(active))
	for i, a := range active {
		buf := append([]byte(nil), a.buf...)
		act[i] = &activeCapture{name: a.name, start: a.start, buf: buf}
	}
	return c, act
}
