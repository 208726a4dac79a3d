// Package statemachine provides the state-function automaton that drives a
// game task: each state is a function on the entity returning the next
// state, nil meaning done.
package statemachine

import (
	"sync"
)

// StateFn is one state of the machine, expressed as a function following
// Rob Pike's lexer pattern.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine runs an entity through its state functions. The current
// state is guarded so observers may inspect it while the machine runs.
type StateMachine[T any] struct {
	entity  *T
	mu      sync.RWMutex
	stateFn StateFn[T]
}

// NewStateMachine creates a machine for the entity, parked at the initial
// state.
func NewStateMachine[T any](entity *T, initial StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{entity: entity, stateFn: initial}
}

// Current returns the state the machine is in, nil once it has finished.
func (sm *StateMachine[T]) Current() StateFn[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stateFn
}

// Run drives the machine from its current state until a state function
// returns nil.
func (sm *StateMachine[T]) Run() {
	for {
		sm.mu.RLock()
		fn := sm.stateFn
		sm.mu.RUnlock()
		if fn == nil {
			return
		}

		next := fn(sm.entity)

		sm.mu.Lock()
		sm.stateFn = next
		sm.mu.Unlock()
	}
}
