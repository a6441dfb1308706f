// Package history implements the command pattern behind undo/redo: a
// [Command] interface for reversible document edits and a [Manager] that
// owns the linear history.
//
// The history is a slice of executed commands plus a cursor. Undo moves
// the cursor left, redo moves it right, and executing a fresh command
// while the cursor sits before the end discards the abandoned redo branch.
// Retention is bounded: when the history outgrows its limit the oldest
// entries fall off and the cursor follows.
//
// Managers are not safe for concurrent use.
package history

import "fmt"

// Command is a reversible edit. Execute applies the edit and Undo reverses
// it, restoring the prior state bit for bit. Commands capture whatever
// before-state they need at construction time, so a command is built
// against current state and executed immediately after.
type Command interface {
	// Execute applies the edit.
	Execute() error
	// Undo reverses a previously executed edit.
	Undo() error
	// Description returns a short human-readable label, e.g. for
	// "Undo Move element" menu entries.
	Description() string
}

// Redoer is implemented by commands whose redo differs from re-executing.
// The manager falls back to Execute for commands without it.
type Redoer interface {
	Redo() error
}

// EventKind identifies what the manager just did with a command.
type EventKind string

// Manager event kinds.
const (
	EventExecute EventKind = "execute"
	EventUndo    EventKind = "undo"
	EventRedo    EventKind = "redo"
)

// Listener receives manager events after a command ran successfully.
// Listeners are compared with ==, so implementations must be comparable
// values, typically pointers.
type Listener interface {
	HistoryChanged(event EventKind, cmd Command)
}

// DefaultLimit is the history retention used when no explicit limit is
// configured.
const DefaultLimit = 100

// Manager owns the undo/redo history.
//
// The zero value is not usable; create managers with [NewManager].
type Manager struct {
	history   []Command
	cursor    int // index of the last executed command, -1 when none
	limit     int
	listeners []Listener
}

// NewManager creates a manager retaining at most limit commands.
// Non-positive limits fall back to [DefaultLimit].
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{cursor: -1, limit: limit}
}

// Subscribe registers a listener. Registering an already subscribed
// listener is a no-op.
func (m *Manager) Subscribe(l Listener) {
	if l == nil {
		return
	}
	for _, existing := range m.listeners {
		if existing == l {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

// Unsubscribe removes a previously registered listener. Unknown listeners
// are ignored.
func (m *Manager) Unsubscribe(l Listener) {
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

func (m *Manager) notify(event EventKind, cmd Command) {
	if len(m.listeners) == 0 {
		return
	}
	snapshot := make([]Listener, len(m.listeners))
	copy(snapshot, m.listeners)
	for _, l := range snapshot {
		l.HistoryChanged(event, cmd)
	}
}

// Execute runs cmd and appends it to the history. When the cursor sits
// before the end of the history, the commands after it are discarded:
// editing after undo abandons the redo branch.
//
// A failing command leaves the history untouched, redo branch included.
func (m *Manager) Execute(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("execute: nil command")
	}
	if err := cmd.Execute(); err != nil {
		return err
	}

	m.history = append(m.history[:m.cursor+1], cmd)
	m.cursor = len(m.history) - 1

	if len(m.history) > m.limit {
		drop := len(m.history) - m.limit
		m.history = append([]Command(nil), m.history[drop:]...)
		m.cursor = len(m.history) - 1
	}

	m.notify(EventExecute, cmd)
	return nil
}

// Undo reverses the command at the cursor. It reports false when there is
// nothing to undo. When the command's Undo fails the cursor stays put, so
// the failing command can be retried or inspected.
func (m *Manager) Undo() (bool, error) {
	if !m.CanUndo() {
		return false, nil
	}
	cmd := m.history[m.cursor]
	if err := cmd.Undo(); err != nil {
		return true, err
	}
	m.cursor--
	m.notify(EventUndo, cmd)
	return true, nil
}

// Redo re-applies the command after the cursor. It reports false when
// there is nothing to redo. Commands implementing [Redoer] get their Redo
// called; all others are re-executed.
func (m *Manager) Redo() (bool, error) {
	if !m.CanRedo() {
		return false, nil
	}
	cmd := m.history[m.cursor+1]

	var err error
	if r, ok := cmd.(Redoer); ok {
		err = r.Redo()
	} else {
		err = cmd.Execute()
	}
	if err != nil {
		return true, err
	}

	m.cursor++
	m.notify(EventRedo, cmd)
	return true, nil
}

// CanUndo reports whether an undo is available.
func (m *Manager) CanUndo() bool {
	return m.cursor >= 0
}

// CanRedo reports whether a redo is available.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.history)-1
}

// UndoDescription returns the description of the command Undo would
// reverse, and false when there is nothing to undo.
func (m *Manager) UndoDescription() (string, bool) {
	if !m.CanUndo() {
		return "", false
	}
	return m.history[m.cursor].Description(), true
}

// RedoDescription returns the description of the command Redo would
// re-apply, and false when there is nothing to redo.
func (m *Manager) RedoDescription() (string, bool) {
	if !m.CanRedo() {
		return "", false
	}
	return m.history[m.cursor+1].Description(), true
}

// Len returns the number of retained commands, executed or undone.
func (m *Manager) Len() int {
	return len(m.history)
}

// ClearHistory drops all retained commands without notifying listeners.
func (m *Manager) ClearHistory() {
	m.history = nil
	m.cursor = -1
}
