package server

import (
	"errors"
	"sync"
	"time"
)

var errGameFinished = errors.New("game finished")

// rendezvous coordinates a game task waiting for a disconnected player with
// the connection handler bringing the replacement socket. The game task
// publishes the pending seat and blocks; the handler claims the seat, swaps
// the sockets in and signals resumption. Waiters are notified over
// channels rather than polling shared state.
type rendezvous struct {
	mu       sync.Mutex
	pending  int  // seat waiting for its player to return, -1 for none
	claimed  bool // a handler owns the pending seat and is swapping in
	finished bool

	changed chan struct{} // closed and replaced on every state change
	resumed chan struct{} // one token per completed swap
	quit    chan struct{} // closed when the game finishes
}

func newRendezvous() *rendezvous {
	return &rendezvous{
		pending: -1,
		changed: make(chan struct{}),
		resumed: make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
}

// bumpLocked wakes everyone blocked on the current changed channel. Caller
// holds mu.
func (r *rendezvous) bumpLocked() {
	close(r.changed)
	r.changed = make(chan struct{})
}

// awaitReturn publishes seat as pending and blocks until a handler swaps
// the player's sockets in, the game finishes, or the timeout passes. It
// reports whether the turn should resume. A zero timeout fails immediately.
func (r *rendezvous) awaitReturn(seat int, timeout time.Duration) bool {
	if timeout == 0 {
		return false
	}
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return false
	}
	r.pending = seat
	r.claimed = false
	r.bumpLocked()
	r.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-r.resumed:
		return !r.isFinished()
	case <-r.quit:
		return false
	case <-timer.C:
	}

	// Deadline passed. If a handler claimed the seat in the meantime it
	// is mid-swap, so wait for it to finish rather than racing it.
	r.mu.Lock()
	claimed := r.claimed
	if !claimed {
		r.pending = -1
		r.bumpLocked()
	}
	r.mu.Unlock()
	if !claimed {
		return false
	}
	select {
	case <-r.resumed:
		return !r.isFinished()
	case <-r.quit:
		return false
	}
}

// claim blocks until the given seat is pending and takes ownership of it.
// Returns errGameFinished if the game ends first.
func (r *rendezvous) claim(seat int) error {
	for {
		r.mu.Lock()
		if r.finished {
			r.mu.Unlock()
			return errGameFinished
		}
		if r.pending == seat && !r.claimed {
			r.claimed = true
			r.mu.Unlock()
			return nil
		}
		ch := r.changed
		r.mu.Unlock()
		select {
		case <-ch:
		case <-r.quit:
		}
	}
}

// resume reports a completed socket swap to the waiting game task.
func (r *rendezvous) resume() {
	r.mu.Lock()
	r.pending = -1
	r.claimed = false
	r.bumpLocked()
	r.mu.Unlock()
	select {
	case r.resumed <- struct{}{}:
	default:
	}
}

// finish marks the game over and wakes every waiter.
func (r *rendezvous) finish() {
	r.mu.Lock()
	if !r.finished {
		r.finished = true
		r.bumpLocked()
		close(r.quit)
	}
	r.mu.Unlock()
}

func (r *rendezvous) isFinished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}
