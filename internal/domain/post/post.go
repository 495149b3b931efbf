package post

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/garyjia/post-review/internal/domain/author"
	"github.com/garyjia/post-review/internal/domain/history"
	"github.com/garyjia/post-review/internal/domain/workflow"
)

// body holds what Draft and PendingReview carry: optional content, optional author
type body struct {
	id         uuid.UUID
	content    string
	hasContent bool
	author     *author.Author
	log        history.Log
}

var reviewTable = workflow.BuildReviewTable[body](approveGuard)

func approveGuard(b body) error {
	if !b.hasContent {
		return ErrMissingContent
	}
	if b.author == nil {
		return ErrMissingAuthor
	}
	return nil
}

// ID identifies the post across all of its states
func (b body) ID() uuid.UUID {
	return b.id
}

// Log returns the post's history
func (b body) Log() history.Log {
	return b.log
}

// History renders the post's history, one numbered entry per line
func (b body) History() string {
	return b.log.Render()
}

// created gives a zero body the id and first entry New would have given it
func (b body) created() body {
	if b.log.Len() == 0 {
		b.id = uuid.New()
		b.log = history.New().Add("Draft created")
	}
	return b
}

func (b body) record(event string) body {
	b.log = b.log.Add(event)
	return b
}

// Draft is an editable post. Content and author are optional.
// Create one with New; a zero Draft is treated as a fresh New() on its first
// operation.
type Draft struct {
	body
}

// PendingReview is a post waiting for a reviewer's decision. It is only
// obtained from Draft.RequestReview.
type PendingReview struct {
	body
}

// Approved is a terminal post. Content and author are always present when it
// comes from PendingReview.Approve, the only way to obtain a usable one.
type Approved struct {
	id      uuid.UUID
	content string
	author  *author.Author
	log     history.Log
}

// New creates an empty draft
func New() Draft {
	return Draft{body: body{
		id:  uuid.New(),
		log: history.New().Add("Draft created"),
	}}
}

// State returns workflow.StateDraft
func (d Draft) State() workflow.State {
	return workflow.StateDraft
}

// AddText appends text to the content, separated from earlier text by a newline
func (d Draft) AddText(text string) Draft {
	b := d.body.created()
	if b.hasContent {
		b.content = b.content + "\n" + text
	} else {
		b.content = text
		b.hasContent = true
	}
	return Draft{body: b.record(fmt.Sprintf("%d characters of text added", utf8.RuneCountInString(text)))}
}

// AddAuthor sets the post's author, replacing any earlier one.
// The author is shared, not copied, and must not be modified afterwards.
func (d Draft) AddAuthor(a *author.Author) Draft {
	b := d.body.created()
	b.author = a
	return Draft{body: b.record(fmt.Sprintf("Author added: %s", a))}
}

// RequestReview submits the draft for review
func (d Draft) RequestReview() PendingReview {
	return PendingReview{body: d.body.created().record("Review requested")}
}

// State returns workflow.StatePendingReview
func (p PendingReview) State() workflow.State {
	return workflow.StatePendingReview
}

// Approve finalizes the post. It fails with ErrInvalidTransition, wrapping
// ErrMissingContent or ErrMissingAuthor, when the post is incomplete.
func (p PendingReview) Approve() (Approved, error) {
	if _, err := reviewTable.Fire(workflow.StatePendingReview, workflow.TriggerApprove, p.body); err != nil {
		return Approved{}, err
	}

	b := p.body.record("Draft approved")
	return Approved{
		id:      b.id,
		content: b.content,
		author:  b.author,
		log:     b.log,
	}, nil
}

// Reject sends the post back to draft. Content and author are kept.
func (p PendingReview) Reject(message string) Draft {
	return Draft{body: p.body.record(fmt.Sprintf("Draft rejected with message: '%s'", message))}
}

// ID identifies the post across all of its states
func (a Approved) ID() uuid.UUID {
	return a.id
}

// State returns workflow.StateApproved
func (a Approved) State() workflow.State {
	return workflow.StateApproved
}

// Content returns the approved text
func (a Approved) Content() string {
	return a.content
}

// Author returns the rendered author
func (a Approved) Author() string {
	if a.author == nil {
		return ""
	}
	return a.author.String()
}

// Log returns the post's history
func (a Approved) Log() history.Log {
	return a.log
}

// History renders the post's history, one numbered entry per line
func (a Approved) History() string {
	return a.log.Render()
}
