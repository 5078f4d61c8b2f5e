package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statewalk/fsa/pkg/byteclass"
)

// threeDigits builds the E1 graph: Start -digit-> D1 -digit-> D2 -digit-> Accept.
func threeDigits() *Automaton {
	a := New(WithName("three-digits"))
	start := a.AddState("start", RoleStart)
	d1 := a.AddState("d1", RoleNormal)
	d2 := a.AddState("d2", RoleNormal)
	accept := a.AddState("accept", RoleAccept)
	a.SetStart(start)
	a.AddAcceptState(accept)
	a.AddClassTransition(start, d1, byteclass.Digit(), PriorityNormal, "")
	a.AddClassTransition(d1, d2, byteclass.Digit(), PriorityNormal, "")
	a.AddClassTransition(d2, accept, byteclass.Digit(), PriorityNormal, "")
	return a
}

func TestE1_ThreeDigits(t *testing.T) {
	a := threeDigits()

	ok, err := a.Validate([]byte("123"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Validate([]byte("12"))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, NotInAcceptState, err.(*Error).Kind)

	ok, err = a.Validate([]byte("1234"))
	require.Error(t, err)
	assert.False(t, ok)
	ferr := err.(*Error)
	assert.Equal(t, NoMatchingTransition, ferr.Kind)
	assert.Equal(t, 3, ferr.Position)

	ok, err = a.Validate([]byte("12a"))
	require.Error(t, err)
	assert.False(t, ok)
	ferr = err.(*Error)
	assert.Equal(t, NoMatchingTransition, ferr.Kind)
	assert.Equal(t, 2, ferr.Position)
}

// catOrCatch builds the E2 graph for the ambiguous prefix cat|catch:
// Start -c-> C -a-> CA, then CA -t-> CAT(accept) at PriorityHigh and
// CA -t-> CATPRE at PriorityNormal, with CATPRE -c-> CATC -h-> CATCH(accept).
// CAT has no outgoing edges, so the greedy driver, which always takes the
// higher-priority 't' into CAT, cannot continue on "catch".
func catOrCatch() *Automaton {
	a := New(WithName("cat-or-catch"))
	start := a.AddState("start", RoleStart)
	c := a.AddState("c", RoleNormal)
	ca := a.AddState("ca", RoleNormal)
	cat := a.AddState("cat", RoleAccept)
	catPre := a.AddState("catpre", RoleNormal)
	catc := a.AddState("catc", RoleNormal)
	catch := a.AddState("catch", RoleAccept)
	a.SetStart(start)
	a.AddAcceptState(cat)
	a.AddAcceptState(catch)
	a.AddClassTransition(start, c, byteclass.Byte('c'), PriorityNormal, "")
	a.AddClassTransition(c, ca, byteclass.Byte('a'), PriorityNormal, "")
	a.AddClassTransition(ca, cat, byteclass.Byte('t'), PriorityHigh, "")
	a.AddClassTransition(ca, catPre, byteclass.Byte('t'), PriorityNormal, "")
	a.AddClassTransition(catPre, catc, byteclass.Byte('c'), PriorityNormal, "")
	a.AddClassTransition(catc, catch, byteclass.Byte('h'), PriorityNormal, "")
	return a
}

func TestE2_AmbiguousPrefix(t *testing.T) {
	a := catOrCatch()

	ok, err := a.Validate([]byte("catch"))
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = a.ValidateWithBacktracking([]byte("catch"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Validate([]byte("cat"))
	require.NoError(t, err)
	assert.True(t, ok)
}

// digitsWithOptionalSuffix builds the E3 graph: Digits is both the start
// state and an accept state, looping on DIGIT, with an epsilon edge to a
// distinct AcceptState.
func digitsWithOptionalSuffix() (a *Automaton, digits, acceptState StateID) {
	a = New(WithName("digits-suffix"), WithDebugFlags(CollectMetrics))
	digits = a.AddState("digits", RoleStart)
	acceptState = a.AddState("accept", RoleAccept)
	a.SetStart(digits)
	a.AddAcceptState(digits)
	a.AddAcceptState(acceptState)
	a.AddClassTransition(digits, digits, byteclass.Digit(), PriorityNormal, "loop")
	a.AddEpsilonTransition(digits, acceptState, PriorityNormal, "")
	return a, digits, acceptState
}

func TestE3_DigitsWithSuffixAndStreaming(t *testing.T) {
	a, _, _ := digitsWithOptionalSuffix()

	ok, err := a.Validate([]byte("12345"))
	require.NoError(t, err)
	assert.True(t, ok)

	m := a.MetricsSnapshot()
	assert.EqualValues(t, 5, m.TransitionsTaken)
	assert.EqualValues(t, 1, m.EpsilonTransitions)
	assert.EqualValues(t, 5, m.CharactersProcessed)

	a2, _, _ := digitsWithOptionalSuffix()
	var status StreamStatus
	for _, b := range []byte("12345") {
		var err error
		status, err = a2.Feed(b)
		require.NoError(t, err)
	}
	assert.Equal(t, StatusComplete, status)
	status, err = a2.EndOfStream()
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, status)
}

func TestStreamingEquivalence(t *testing.T) {
	// Empty input is excluded: spec.md §4.5 makes end_of_stream before
	// any feed an UnexpectedEndOfInput error regardless of what the
	// graph would otherwise accept, so it is not required to agree with
	// one-shot Validate on zero bytes.
	inputs := [][]byte{[]byte("123"), []byte("1234567"), []byte("0")}
	for _, in := range inputs {
		a1, _, _ := digitsWithOptionalSuffix()
		want, wantErr := a1.Validate(in)

		a2, _, _ := digitsWithOptionalSuffix()
		last, errFeed := a2.FeedChunk(in)
		if errFeed == nil {
			last, errFeed = a2.EndOfStream()
		}
		got := last == StatusComplete
		assert.Equal(t, want, got, "input %q", in)
		if wantErr != nil {
			assert.Error(t, errFeed)
		}
	}
}

// captureDigits builds the E4 graph: Digits is the start state (entry
// hook opens capture "num", exit hook closes it) -> (epsilon) -> Accept.
func captureDigits() *Automaton {
	a := New(WithName("capture-digits"))
	digits := a.AddState("digits", RoleStart)
	accept := a.AddState("accept", RoleAccept)
	a.SetStart(digits)
	a.AddAcceptState(accept)
	a.SetStateEntryHook(digits, func(ctx *HookContext) { ctx.BeginCapture("num") })
	a.SetStateExitHook(digits, func(ctx *HookContext) { ctx.EndCapture("num") })
	a.AddClassTransition(digits, digits, byteclass.Digit(), PriorityNormal, "")
	a.AddEpsilonTransition(digits, accept, PriorityNormal, "")
	return a
}

func TestE4_Capture(t *testing.T) {
	a := captureDigits()
	// self-loop on `digits` never fires exit/entry (same state), so the
	// capture only closes once when the epsilon to `accept` fires.
	status, err := a.Feed('1')
	require.NoError(t, err)
	assert.Equal(t, StatusWaitingForInput, status)
	_, err = a.Feed('2')
	require.NoError(t, err)
	_, err = a.Feed('3')
	require.NoError(t, err)
	status, err = a.EndOfStream()
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, status)

	caps := a.Captures()
	require.Len(t, caps, 1)
	assert.Equal(t, "num", caps[0].Name)
	assert.Equal(t, []byte("123"), caps[0].Bytes)
	assert.Equal(t, 0, caps[0].Start)
	assert.Equal(t, 3, caps[0].End)
}

// captureBacktrack builds the E5 graph: two alternatives from Start, each
// entering a distinct intermediate that begins capture "data", both
// converging at Accept via a different second byte.
func captureBacktrack() *Automaton {
	a := New(WithName("capture-backtrack"))
	start := a.AddState("start", RoleStart)
	altA := a.AddState("altA", RoleNormal)
	altB := a.AddState("altB", RoleNormal)
	accept := a.AddState("accept", RoleAccept)
	a.SetStart(start)
	a.AddAcceptState(accept)
	a.MarkChoicePoint(start)
	a.SetStateEntryHook(altA, func(ctx *HookContext) { ctx.BeginCapture("data") })
	a.SetStateEntryHook(altB, func(ctx *HookContext) { ctx.BeginCapture("data") })
	a.SetStateExitHook(altA, func(ctx *HookContext) { ctx.EndCapture("data") })
	a.SetStateExitHook(altB, func(ctx *HookContext) { ctx.EndCapture("data") })
	a.AddClassTransition(start, altA, byteclass.Byte('a'), PriorityHigh, "")
	a.AddClassTransition(altA, accept, byteclass.Byte('x'), PriorityNormal, "")
	a.AddClassTransition(altB, accept, byteclass.Byte('y'), PriorityNormal, "")
	// altB is reachable via a second Start transition on the same byte
	// 'a', at lower priority, so the greedy head always tries altA
	// first and only altB admits a trailing 'y'.
	a.AddClassTransition(start, altB, byteclass.Byte('a'), PriorityLowest, "")
	return a
}

func TestE5_BacktrackingCapture(t *testing.T) {
	a := captureBacktrack()

	ok, err := a.ValidateWithBacktracking([]byte("ay"))
	require.NoError(t, err)
	assert.True(t, ok)

	caps := a.Captures()
	require.Len(t, caps, 1)
	assert.Equal(t, "data", caps[0].Name)
	assert.Equal(t, []byte("a"), caps[0].Bytes)

	stats := a.BacktrackStatsSnapshot()
	assert.GreaterOrEqual(t, stats.BacktracksPerformed, uint64(1))
}

// deepFanOut builds a graph whose fan-out creates deeper choice stacks
// than a configured cap of 2 (E6).
func deepFanOut(maxDepth int) *Automaton {
	a := New(WithName("deep-fanout"), WithMaxBacktrackDepth(maxDepth))
	start := a.AddState("start", RoleStart)
	a.SetStart(start)
	cur := start
	for i := 0; i < 4; i++ {
		next := a.AddState("s", RoleNormal)
		a.AddClassTransition(cur, next, byteclass.Byte('a'), PriorityHigh, "")
		a.AddClassTransition(cur, next, byteclass.Byte('a'), PriorityLow, "")
		cur = next
	}
	a.AddAcceptState(cur)
	return a
}

func TestE6_MaxStackDepthCap(t *testing.T) {
	a := deepFanOut(2)
	_, _ = a.ValidateWithBacktracking([]byte("aaaa"))
	stats := a.BacktrackStatsSnapshot()
	assert.LessOrEqual(t, stats.MaxStackDepth, uint64(2))
}

func TestBacktrackingDominatesGreedy(t *testing.T) {
	a := catOrCatch()
	greedyOK, _ := a.Validate([]byte("catch"))
	btOK, err := a.ValidateWithBacktracking([]byte("catch"))
	require.NoError(t, err)
	assert.False(t, greedyOK)
	assert.True(t, btOK)
}

func TestPriorityOrdering(t *testing.T) {
	a := New(WithName("priority"))
	start := a.AddState("start", RoleStart)
	low := a.AddState("low", RoleAccept)
	high := a.AddState("high", RoleAccept)
	a.SetStart(start)
	a.AddAcceptState(low)
	a.AddAcceptState(high)
	a.AddClassTransition(start, low, byteclass.Alpha(), PriorityLow, "")
	a.AddClassTransition(start, high, byteclass.Alpha(), PriorityHigh, "")

	ok, err := a.Validate([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	// the greedy driver must have taken the PriorityHigh transition
	assert.Equal(t, high, a.exec.current)
}

func TestDeterminismOfGreedyValidation(t *testing.T) {
	a := threeDigits()
	ok1, err1 := a.Validate([]byte("123"))
	state1 := a.exec.current
	a.Reset()
	ok2, err2 := a.Validate([]byte("123"))
	state2 := a.exec.current
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, err1, err2)
	assert.Equal(t, state1, state2)
}

func TestMergePreservation(t *testing.T) {
	sub := New(WithName("digit-run"))
	subStart := sub.AddState("start", RoleStart)
	subAccept := sub.AddState("accept", RoleAccept)
	sub.SetStart(subStart)
	sub.AddAcceptState(subAccept)
	sub.AddClassTransition(subStart, subAccept, byteclass.Digit(), PriorityNormal, "")

	host := New(WithName("host"))
	hStart := host.AddState("start", RoleStart)
	hMid := host.AddState("mid", RoleNormal)
	hAccept := host.AddState("accept", RoleAccept)
	host.SetStart(hStart)
	host.AddAcceptState(hAccept)
	host.AddClassTransition(hStart, hMid, byteclass.Byte('#'), PriorityNormal, "")

	newIDs, err := Merge(host, hMid, hAccept, sub)
	require.NoError(t, err)
	assert.NotEmpty(t, newIDs)

	ok, err := host.Validate([]byte("#5"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = host.Validate([]byte("#"))
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestEpsilonClosureTerminatesThroughCycle(t *testing.T) {
	a := New(WithName("epsilon-cycle"))
	s1 := a.AddState("s1", RoleStart)
	s2 := a.AddState("s2", RoleNormal)
	accept := a.AddState("accept", RoleAccept)
	a.SetStart(s1)
	a.AddAcceptState(accept)
	a.AddEpsilonTransition(s1, s2, PriorityNormal, "")
	a.AddEpsilonTransition(s2, s1, PriorityNormal, "")
	a.AddEpsilonTransition(s2, accept, PriorityNormal, "")

	ok, err := a.Validate([]byte(""))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnknownStateReferencePanics(t *testing.T) {
	a := New()
	s := a.AddState("s", RoleNormal)
	assert.Panics(t, func() { a.AddClassTransition(s, StateID(999), byteclass.Digit(), PriorityNormal, "") })
}

func TestCaptureMisusePanics(t *testing.T) {
	a := threeDigits()
	a.Reset()
	assert.Panics(t, func() {
		a.beginCapture("num", 0)
		a.beginCapture("num", 0)
	})
	a2 := threeDigits()
	a2.Reset()
	assert.Panics(t, func() {
		a2.endCapture("nonexistent", 0)
	})
}

func TestLintFindsUnreachableAndAmbiguous(t *testing.T) {
	a := New(WithName("lint-me"))
	start := a.AddState("start", RoleStart)
	reachable := a.AddState("reachable", RoleAccept)
	orphan := a.AddState("orphan", RoleNormal)
	a.SetStart(start)
	a.AddAcceptState(reachable)
	a.AddClassTransition(start, reachable, byteclass.Digit(), PriorityNormal, "")
	a.AddClassTransition(start, reachable, byteclass.Range('5', '9'), PriorityNormal, "overlaps 5-9")
	_ = orphan

	findings := a.Lint()
	var sawUnreachable, sawAmbiguous bool
	for _, f := range findings {
		if f.Kind == UnreachableStates && f.State == orphan {
			sawUnreachable = true
		}
		if f.Kind == AmbiguousTransition {
			sawAmbiguous = true
		}
	}
	assert.True(t, sawUnreachable)
	assert.True(t, sawAmbiguous)
}

func TestExportDOTContainsExpectedMarkers(t *testing.T) {
	a := threeDigits()
	dot := a.ExportDOT()
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "doublecircle")

	a2 := digitsSuffixEpsilon()
	dot2 := a2.ExportDOT()
	assert.Contains(t, dot2, "ε")
}

func digitsSuffixEpsilon() *Automaton {
	a, _, _ := digitsWithOptionalSuffix()
	return a
}
