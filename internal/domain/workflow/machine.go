package workflow

// TransitionTable answers which state a trigger leads to. It holds no current
// state of its own: callers pass the state they are in and receive the next
// one, so a table can be shared by any number of posts.
type TransitionTable[S any] interface {
	// Fire resolves the target state for trigger fired from the given state.
	// The subject is handed to guards; it is never modified.
	Fire(from State, trigger Trigger, subject S) (State, error)

	// CanFire returns true if any transition for trigger exists from the given state
	CanFire(from State, trigger Trigger) bool

	// PermittedTriggers returns the triggers configured for the given state, sorted
	PermittedTriggers(from State) []Trigger
}
