// Package post implements the document review workflow.
//
// # Typestate
//
// Each workflow state is its own type and only carries the methods that are
// legal in that state:
//
//	New() → Draft
//	Draft.AddText / Draft.AddAuthor → Draft
//	Draft.RequestReview → PendingReview
//	PendingReview.Reject → Draft
//	PendingReview.Approve → Approved
//
// Calling Approve on a Draft, or reading Content from a PendingReview, does
// not compile. Transitions return new values; the value a transition was
// called on is left as it was, including its history.
//
// Approve is the one transition that needs a runtime check: an Approved post
// always has content and an author, so approving a post that lacks either
// returns ErrInvalidTransition.
//
// # Runtime posts
//
// [Post] wraps any of the three states behind a state tag for callers whose
// call sequence is data rather than code (see the scenario runner). Every
// operation on a Post checks the tag against the review transition table and
// fails with ErrInvalidTransition when the operation is not defined for the
// current state, leaving the Post untouched.
package post
