// Package board holds the session state of the dashboard: the full ticket
// set, the filtered view derived from it, and the status shown to the user.
package board

import (
	"sync"

	"github.com/danielolaszy/ticketboard/pkg/models"
)

// State is the lifecycle state of the board.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateLoading      State = "loading"
	StateLive         State = "live"
	StateFallback     State = "fallback"
)

// Board is the session-scoped ticket store. It is safe for concurrent use.
type Board struct {
	mu sync.RWMutex

	full     []models.Ticket
	filtered []models.Ticket
	filter   Filter

	state   State
	message Message

	// started is the token of the most recently started load and applied the
	// token of the most recently applied one.
	started uint64
	applied uint64
}

// New returns an empty, unconfigured board.
func New() *Board {
	return &Board{
		full:     []models.Ticket{},
		filtered: []models.Ticket{},
		state:    StateUnconfigured,
	}
}

// Snapshot is a consistent, caller-owned copy of the board.
type Snapshot struct {
	State   State
	Message Message

	// Notice is set when sample tickets are displayed under a message that
	// does not already say so.
	Notice string

	Filter  Filter
	Tickets []models.Ticket
	Stats   Stats
}

// Fallback reports whether the sample tickets are displayed.
func (s Snapshot) Fallback() bool {
	return s.State == StateFallback
}

// SetFilter changes the active filter and recomputes the view.
func (b *Board) SetFilter(f Filter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = f
	b.filtered = Apply(b.full, f.Status, f.Search)
}

// SetMessage replaces the status message without touching the tickets.
func (b *Board) SetMessage(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.message = m
}

// State returns the current lifecycle state.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state
}

// Snapshot returns a copy of the current view. Stats always cover the full
// set regardless of the active filter.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.snapshot(b.filter, append([]models.Ticket(nil), b.filtered...))
}

// View returns a snapshot filtered by f without changing the active filter,
// so concurrent callers each see their own filter.
func (b *Board) View(f Filter) Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.snapshot(f, Apply(b.full, f.Status, f.Search))
}

// snapshot must be called with b.mu held.
func (b *Board) snapshot(f Filter, tickets []models.Ticket) Snapshot {
	snap := Snapshot{
		State:   b.state,
		Message: b.message,
		Filter:  f,
		Tickets: tickets,
		Stats:   ComputeStats(b.full),
	}
	if snap.Tickets == nil {
		snap.Tickets = []models.Ticket{}
	}
	if b.state == StateFallback && b.message.Text != FallbackNotice {
		snap.Notice = FallbackNotice
	}
	return snap
}

// begin marks a load as started and returns its token.
func (b *Board) begin(m Message) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.started++
	b.state = StateLoading
	b.message = m
	return b.started
}

// apply installs the result of the load identified by token. Results older
// than the last applied load are discarded and apply reports false.
func (b *Board) apply(token uint64, state State, tickets []models.Ticket, m Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if token < b.applied {
		return false
	}

	b.applied = token
	b.state = state
	b.message = m
	b.full = append([]models.Ticket(nil), tickets...)
	b.filtered = Apply(b.full, b.filter.Status, b.filter.Search)
	return true
}
