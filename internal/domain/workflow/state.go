package workflow

// State represents a post's position in the review lifecycle
type State string

const (
	StateDraft         State = "DRAFT"
	StatePendingReview State = "PENDING_REVIEW"
	StateApproved      State = "APPROVED"
)

var validStates = map[State]bool{
	StateDraft:         true,
	StatePendingReview: true,
	StateApproved:      true,
}

var terminalStates = map[State]bool{
	StateApproved: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}
