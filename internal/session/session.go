package session

import (
	"sync"

	"github.com/bookhive/library-service/internal/model"
)

// BorrowState is the "current member + borrow info" view shared with
// subscribers after every mutating operation.
type BorrowState struct {
	MemberID      string `json:"memberId"`
	BorrowedCount int    `json:"borrowedCount"`
	PendingFines  int    `json:"pendingFines"`
}

type State struct {
	User   model.AuthUser `json:"user"`
	Borrow BorrowState    `json:"borrow"`
}

// Hub owns the shared session state. Consumers register callbacks
// instead of reading ambient globals; writers go through SetUser and
// SetBorrow, which fan the new state out.
type Hub struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(fn func(State)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, fn)
}

func (h *Hub) Current() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Hub) SetUser(user model.AuthUser) {
	h.mu.Lock()
	h.state.User = user
	state, subs := h.state, append([]func(State){}, h.subs...)
	h.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func (h *Hub) SetBorrow(borrow BorrowState) {
	h.mu.Lock()
	h.state.Borrow = borrow
	state, subs := h.state, append([]func(State){}, h.subs...)
	h.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
