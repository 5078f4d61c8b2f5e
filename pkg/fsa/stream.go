package fsa

// StreamStatus is the public status of the incremental driver (spec.md
// §2/§4.5).
type StreamStatus int

const (
	StatusReady StreamStatus = iota
	StatusProcessing
	StatusWaitingForInput
	StatusComplete
	StatusError
)

func (s StreamStatus) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusProcessing:
		return "Processing"
	case StatusWaitingForInput:
		return "WaitingForInput"
	case StatusComplete:
		return "Complete"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StreamStatus returns the current streaming status.
func (a *Automaton) StreamStatus() StreamStatus {
	return a.exec.streamStatus
}

// Feed admits one byte to the streaming driver (spec.md §4.5). The first
// call transitions Ready -> Processing. Once the status is Error, every
// further call is a no-op that returns Error.
func (a *Automaton) Feed(b byte) (StreamStatus, error) {
	if a.exec.streamStatus == StatusError {
		return StatusError, a.exec.lastErr
	}
	if !a.exec.streamStarted {
		if !a.start.Valid() {
			a.exec.streamStatus = StatusError
			return StatusError, a.failNoStart()
		}
		a.Reset()
		a.exec.streamStarted = true
		a.exec.streamStatus = StatusProcessing
	}
	pos := a.exec.pos
	t := a.selectTransition(a.exec.current, b)
	if t == nil {
		err := a.newError(NoMatchingTransition, pos, b, a.exec.current, "", nil)
		a.exec.lastErr = err
		a.exec.streamStatus = StatusError
		a.maybeExportOnError()
		return StatusError, err
	}
	a.exec.input = append(a.exec.input, b)
	a.commit(t, pos, b)
	if a.IsAccept(a.exec.current) {
		a.exec.streamStatus = StatusComplete
	} else {
		a.exec.streamStatus = StatusWaitingForInput
	}
	return a.exec.streamStatus, nil
}

// FeedChunk feeds each byte of chunk in order, stopping at the first
// Error.
func (a *Automaton) FeedChunk(chunk []byte) (StreamStatus, error) {
	for _, b := range chunk {
		status, err := a.Feed(b)
		if err != nil {
			return status, err
		}
	}
	return a.exec.streamStatus, nil
}

// EndOfStream closes the epsilon closure at the current position and
// finalizes streaming status. Calling it before any Feed is an
// UnexpectedEndOfInput error.
func (a *Automaton) EndOfStream() (StreamStatus, error) {
	if a.exec.streamStatus == StatusError {
		return StatusError, a.exec.lastErr
	}
	if !a.exec.streamStarted {
		err := a.newError(UnexpectedEndOfInput, 0, 0, 0, "end_of_stream called before any feed", nil)
		a.exec.lastErr = err
		a.exec.streamStatus = StatusError
		return StatusError, err
	}
	if err := a.epsilonClosure(a.exec.pos); err != nil {
		a.exec.lastErr = err
		a.exec.streamStatus = StatusError
		return StatusError, err
	}
	if !a.IsAccept(a.exec.current) {
		err := a.newError(NotInAcceptState, a.exec.pos, 0, a.exec.current, "", nil)
		a.exec.lastErr = err
		a.exec.streamStatus = StatusError
		a.maybeExportOnError()
		return StatusError, err
	}
	a.exec.streamStatus = StatusComplete
	return StatusComplete, nil
}

// ResetStream returns the status to Ready without discarding the
// accumulated captures or graph state, permitting post-run inspection
// (spec.md §4.5). A full Reset clears execution state entirely.
func (a *Automaton) ResetStream() {
	a.exec.streamStatus = StatusReady
	a.exec.streamStarted = false
}
