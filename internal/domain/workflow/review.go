package workflow

// BuildReviewTable creates the transition table for the post review workflow.
// approveGuard decides whether a pending post is complete enough to approve;
// it may be nil.
func BuildReviewTable[S any](approveGuard GuardFunc[S]) TransitionTable[S] {
	builder := NewBuilder[S]()

	// DRAFT state transitions
	builder.Configure(StateDraft).
		Permit(TriggerAddText, StateDraft).
		Permit(TriggerAddAuthor, StateDraft).
		Permit(TriggerRequestReview, StatePendingReview)

	// PENDING_REVIEW state transitions
	builder.Configure(StatePendingReview).
		PermitIf(TriggerApprove, StateApproved, approveGuard).
		Permit(TriggerReject, StateDraft)

	// APPROVED is terminal - no outgoing transitions

	return builder.Build()
}
