package workflow

// Trigger represents an operation requested on a post
type Trigger string

const (
	TriggerAddText       Trigger = "ADD_TEXT"
	TriggerAddAuthor     Trigger = "ADD_AUTHOR"
	TriggerRequestReview Trigger = "REQUEST_REVIEW"
	TriggerApprove       Trigger = "APPROVE"
	TriggerReject        Trigger = "REJECT"
)

var validTriggers = map[Trigger]bool{
	TriggerAddText:       true,
	TriggerAddAuthor:     true,
	TriggerRequestReview: true,
	TriggerApprove:       true,
	TriggerReject:        true,
}

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// IsValid returns true if the trigger is a known workflow trigger
func (t Trigger) IsValid() bool {
	return validTriggers[t]
}
