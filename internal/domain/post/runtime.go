package post

import (
	"fmt"

	"github.com/garyjia/post-review/internal/domain/author"
	"github.com/garyjia/post-review/internal/domain/workflow"
)

// Post holds a post in any workflow state. Operations are checked against
// the current state at runtime; a failed operation returns the receiver
// unchanged together with an error wrapping ErrInvalidTransition.
type Post struct {
	state workflow.State
	body
}

// Action is one operation to apply to a Post. Text is used by ADD_TEXT,
// Author by ADD_AUTHOR and Message by REJECT.
type Action struct {
	Trigger workflow.Trigger
	Text    string
	Message string
	Author  *author.Author
}

// Start creates a runtime post in the draft state
func Start() Post {
	return FromDraft(New())
}

// FromDraft wraps a draft
func FromDraft(d Draft) Post {
	return Post{state: workflow.StateDraft, body: d.body.created()}
}

// FromPendingReview wraps a post awaiting review
func FromPendingReview(p PendingReview) Post {
	return Post{state: workflow.StatePendingReview, body: p.body}
}

// FromApproved wraps an approved post. It fails with ErrMissingAuthor for an
// Approved that did not come from PendingReview.Approve.
func FromApproved(a Approved) (Post, error) {
	if a.author == nil {
		return Post{}, fmt.Errorf("%w: approved post %s", ErrMissingAuthor, a.id)
	}
	return Post{
		state: workflow.StateApproved,
		body: body{
			id:         a.id,
			content:    a.content,
			hasContent: true,
			author:     a.author,
			log:        a.log,
		},
	}, nil
}

// State returns the current workflow state
func (p Post) State() workflow.State {
	return p.state
}

// Approved returns the typed approved post when the post is in the approved state
func (p Post) Approved() (Approved, bool) {
	if p.state != workflow.StateApproved {
		return Approved{}, false
	}
	return Approved{id: p.id, content: p.content, author: p.author, log: p.log}, true
}

// AddText appends text. Only valid for drafts.
func (p Post) AddText(text string) (Post, error) {
	if err := p.check(workflow.TriggerAddText); err != nil {
		return p, err
	}
	return FromDraft(Draft{body: p.body}.AddText(text)), nil
}

// AddAuthor sets the author. Only valid for drafts.
func (p Post) AddAuthor(a *author.Author) (Post, error) {
	if err := p.check(workflow.TriggerAddAuthor); err != nil {
		return p, err
	}
	return FromDraft(Draft{body: p.body}.AddAuthor(a)), nil
}

// RequestReview submits a draft for review
func (p Post) RequestReview() (Post, error) {
	if err := p.check(workflow.TriggerRequestReview); err != nil {
		return p, err
	}
	return FromPendingReview(Draft{body: p.body}.RequestReview()), nil
}

// Approve finalizes a post pending review
func (p Post) Approve() (Post, error) {
	if err := p.check(workflow.TriggerApprove); err != nil {
		return p, err
	}
	approved, err := PendingReview{body: p.body}.Approve()
	if err != nil {
		return p, err
	}
	return FromApproved(approved)
}

// Reject sends a post pending review back to draft
func (p Post) Reject(message string) (Post, error) {
	if err := p.check(workflow.TriggerReject); err != nil {
		return p, err
	}
	return FromDraft(PendingReview{body: p.body}.Reject(message)), nil
}

// Content returns the text of an approved post
func (p Post) Content() (string, error) {
	a, ok := p.Approved()
	if !ok {
		return "", fmt.Errorf("%w: content is only readable in state %s, post is %s",
			ErrInvalidTransition, workflow.StateApproved, p.state)
	}
	return a.Content(), nil
}

// Author returns the rendered author of an approved post
func (p Post) Author() (string, error) {
	a, ok := p.Approved()
	if !ok {
		return "", fmt.Errorf("%w: author is only readable in state %s, post is %s",
			ErrInvalidTransition, workflow.StateApproved, p.state)
	}
	return a.Author(), nil
}

// Apply dispatches an action to the matching operation
func (p Post) Apply(a Action) (Post, error) {
	switch a.Trigger {
	case workflow.TriggerAddText:
		return p.AddText(a.Text)
	case workflow.TriggerAddAuthor:
		return p.AddAuthor(a.Author)
	case workflow.TriggerRequestReview:
		return p.RequestReview()
	case workflow.TriggerApprove:
		return p.Approve()
	case workflow.TriggerReject:
		return p.Reject(a.Message)
	default:
		return p, fmt.Errorf("%w: unknown trigger %q", ErrInvalidTransition, a.Trigger)
	}
}

// check verifies that trigger is defined for the current state. Guards run
// later in the typed transition.
func (p Post) check(trigger workflow.Trigger) error {
	if !reviewTable.CanFire(p.state, trigger) {
		return fmt.Errorf("%w: cannot %s a post in state %s", ErrInvalidTransition, trigger, p.state)
	}
	return nil
}
