package workflow

import (
	"fmt"
	"sort"
)

// GuardFunc decides whether a transition may be taken for a subject.
// A nil error lets the transition through; the error explains a refusal.
type GuardFunc[S any] func(subject S) error

// StateMachineBuilder builds a transition table
type StateMachineBuilder[S any] interface {
	// Configure returns a state configuration for the given state
	Configure(state State) StateConfiguration[S]

	// Build freezes the configured transitions into a table
	Build() TransitionTable[S]
}

// StateConfiguration configures transitions for a specific state
type StateConfiguration[S any] interface {
	// Permit allows a trigger to transition to the target state
	Permit(trigger Trigger, toState State) StateConfiguration[S]

	// PermitIf allows a trigger to transition to the target state if the guard passes
	PermitIf(trigger Trigger, toState State, guard GuardFunc[S]) StateConfiguration[S]
}

type transition[S any] struct {
	toState State
	guard   GuardFunc[S]
}

type stateConfig[S any] struct {
	fromState   State
	transitions map[Trigger][]transition[S]
}

type stateMachineBuilder[S any] struct {
	configurations map[State]*stateConfig[S]
}

type table[S any] struct {
	configurations map[State]map[Trigger][]transition[S]
}

// NewBuilder creates a new transition table builder
func NewBuilder[S any]() StateMachineBuilder[S] {
	return &stateMachineBuilder[S]{
		configurations: make(map[State]*stateConfig[S]),
	}
}

// Configure returns a state configuration for the given state
func (b *stateMachineBuilder[S]) Configure(state State) StateConfiguration[S] {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}

	config, exists := b.configurations[state]
	if !exists {
		config = &stateConfig[S]{
			fromState:   state,
			transitions: make(map[Trigger][]transition[S]),
		}
		b.configurations[state] = config
	}

	return config
}

// Build copies the configurations so later Configure calls don't leak into built tables
func (b *stateMachineBuilder[S]) Build() TransitionTable[S] {
	configs := make(map[State]map[Trigger][]transition[S], len(b.configurations))
	for state, config := range b.configurations {
		transitions := make(map[Trigger][]transition[S], len(config.transitions))
		for trigger, ts := range config.transitions {
			transitions[trigger] = append([]transition[S]{}, ts...)
		}
		configs[state] = transitions
	}

	return &table[S]{configurations: configs}
}

// Permit allows a trigger to transition to the target state
func (c *stateConfig[S]) Permit(trigger Trigger, toState State) StateConfiguration[S] {
	return c.PermitIf(trigger, toState, nil)
}

// PermitIf allows a trigger to transition to the target state if the guard passes
func (c *stateConfig[S]) PermitIf(trigger Trigger, toState State, guard GuardFunc[S]) StateConfiguration[S] {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}

	c.transitions[trigger] = append(c.transitions[trigger], transition[S]{
		toState: toState,
		guard:   guard,
	})

	return c
}

// Fire tries each configured transition in order and returns the first whose guard passes
func (t *table[S]) Fire(from State, trigger Trigger, subject S) (State, error) {
	if !from.IsValid() {
		return from, fmt.Errorf("%w: %s", ErrInvalidState, from)
	}

	transitions := t.configurations[from][trigger]
	if len(transitions) == 0 {
		return from, fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, from)
	}

	var lastErr error
	for _, tr := range transitions {
		if tr.guard == nil {
			return tr.toState, nil
		}
		if err := tr.guard(subject); err != nil {
			lastErr = err
			continue
		}
		return tr.toState, nil
	}

	return from, fmt.Errorf("%w: %w: trigger %s from state %s: %w",
		ErrInvalidTransition, ErrGuardFailed, trigger, from, lastErr)
}

// CanFire returns true if the trigger is configured for the state. Guards are not evaluated.
func (t *table[S]) CanFire(from State, trigger Trigger) bool {
	return len(t.configurations[from][trigger]) > 0
}

// PermittedTriggers returns all triggers configured for the state
func (t *table[S]) PermittedTriggers(from State) []Trigger {
	transitions := t.configurations[from]
	triggers := make([]Trigger, 0, len(transitions))
	for trigger := range transitions {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })

	return triggers
}
