package fsa

// Hook is a capability closure fired on state entry, state exit, or
// transition, per spec.md §9's "avoid simulating inheritance" note: a
// single function-typed capability is enough, no hook interface
// hierarchy is needed.
type Hook func(ctx *HookContext)

// HookContext is the opaque handle passed to a Hook. It carries the
// position and byte (or the zero sentinel for epsilon steps, per spec.md
// §4.6/§4.8) plus a handle back into the running automaton so hooks can
// drive captures and read caller-supplied UserData. Hooks may observe
// graph structure through the automaton but must not mutate it mid-run.
type HookContext struct {
	Position int
	Byte     byte
	Epsilon  bool

	a *Automaton
}

// UserData returns the opaque value installed with WithUserData.
func (c *HookContext) UserData() any {
	return c.a.userData
}

// BeginCapture opens a new named capture at the current position. It
// panics if a capture with that name is already active — spec.md §7
// classes this as a structural misuse, not a runtime error.
func (c *HookContext) BeginCapture(name string) {
	c.a.beginCapture(name, c.Position)
}

// EndCapture closes the named capture and appends it to the automaton's
// completed capture list. It panics if no capture with that name is
// active.
func (c *HookContext) EndCapture(name string) {
	c.a.endCapture(name, c.Position)
}

// fireTransitionHooks implements the exit -> transition -> entry ordering
// of spec.md §4.4.b/§4.6/§4.8/§5.
func fireTransitionHooks(a *Automaton, t *Transition, from, to StateID, pos int, b byte, epsilon bool) {
	if from.Valid() {
		if s := a.states[from]; s != nil && s.OnExit != nil {
			s.OnExit(&HookContext{Position: pos, Byte: b, Epsilon: epsilon, a: a})
		}
	}
	if t != nil && t.Hook != nil {
		t.Hook(&HookContext{Position: pos, Byte: b, Epsilon: epsilon, a: a})
	}
	if to.Valid() {
		if s := a.states[to]; s != nil && s.OnEntry != nil {
			s.OnEntry(&HookContext{Position: pos, Byte: b, Epsilon: epsilon, a: a})
		}
	}
}
