package event

import "github.com/garyjia/post-review/internal/domain/workflow"

// Type identifies the type of domain event
type Type string

const (
	TypePostCreated     Type = "post.created"
	TypeTextAdded       Type = "post.text_added"
	TypeAuthorAdded     Type = "post.author_added"
	TypeReviewRequested Type = "post.review_requested"
	TypePostApproved    Type = "post.approved"
	TypePostRejected    Type = "post.rejected"
)

var triggerTypes = map[workflow.Trigger]Type{
	workflow.TriggerAddText:       TypeTextAdded,
	workflow.TriggerAddAuthor:     TypeAuthorAdded,
	workflow.TriggerRequestReview: TypeReviewRequested,
	workflow.TriggerApprove:       TypePostApproved,
	workflow.TriggerReject:        TypePostRejected,
}

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypePostCreated,
		TypeTextAdded,
		TypeAuthorAdded,
		TypeReviewRequested,
		TypePostApproved,
		TypePostRejected:
		return true
	default:
		return false
	}
}

// TypeForTrigger returns the event emitted when trigger succeeds
func TypeForTrigger(trigger workflow.Trigger) (Type, bool) {
	t, ok := triggerTypes[trigger]
	return t, ok
}
