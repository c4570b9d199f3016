// Package session owns terminal interaction: assembling raw input lines
// into complete units, dispatching them, and keeping the prompt responsive
// to cancellation.
package session

import "strings"

// State is the multiline-assembly state.
type State int

const (
	// StateSingle is the initial state: each line stands alone until it
	// proves otherwise.
	StateSingle State = iota
	// StateMultiline accumulates continuation lines until a terminator.
	StateMultiline
)

// ActionKind classifies what the loop should do after a line.
type ActionKind int

const (
	// ActionNone means re-prompt; nothing to dispatch.
	ActionNone ActionKind = iota
	// ActionDispatch means a complete unit is ready in Action.Statement.
	ActionDispatch
	// ActionExit means the session should terminate gracefully.
	ActionExit
)

// Action is the outcome of feeding one line to the machine.
type Action struct {
	Kind ActionKind
	// Statement is the complete unit to dispatch; set only for ActionDispatch.
	Statement string
}

// exitTokens terminate the session from either state, regardless of any
// buffered input.
var exitTokens = map[string]bool{
	"exit":  true,
	"quit":  true,
	".exit": true,
}

// Machine assembles trimmed input lines into complete units.
//
// A line ending with ";" or starting with "." is complete on its own in
// the single-line state; anything else opens a multiline buffer that
// accumulates newline-joined lines until one ends with ";". Dot commands
// are never subject to multiline accumulation: the terminator check only
// applies to SQL-shaped input.
type Machine struct {
	state State
	lines []string
}

// InMultiline reports whether a statement is being accumulated.
func (m *Machine) InMultiline() bool { return m.state == StateMultiline }

// HandleLine feeds one raw input line through the state machine.
func (m *Machine) HandleLine(raw string) Action {
	line := strings.TrimSpace(raw)

	if exitTokens[strings.ToLower(line)] {
		m.reset()
		return Action{Kind: ActionExit}
	}

	if m.state == StateMultiline {
		m.lines = append(m.lines, line)
		if strings.HasSuffix(line, ";") {
			stmt := strings.Join(m.lines, "\n")
			m.reset()
			return Action{Kind: ActionDispatch, Statement: stmt}
		}
		return Action{Kind: ActionNone}
	}

	if line == "" {
		return Action{Kind: ActionNone}
	}
	if strings.HasPrefix(line, ".") || strings.HasSuffix(line, ";") {
		return Action{Kind: ActionDispatch, Statement: line}
	}

	// Unterminated SQL: open the multiline buffer.
	m.lines = []string{line}
	m.state = StateMultiline
	return Action{Kind: ActionNone}
}

// Interrupt handles a user cancellation. In the multiline state the buffer
// is discarded and the machine returns to single-line mode; the return
// value reports whether buffered input was thrown away.
func (m *Machine) Interrupt() bool {
	if m.state != StateMultiline {
		return false
	}
	m.reset()
	return true
}

func (m *Machine) reset() {
	m.state = StateSingle
	m.lines = nil
}
