package post

import (
	"errors"

	"github.com/garyjia/post-review/internal/domain/workflow"
)

var (
	// ErrInvalidTransition is returned when an operation is not defined for the post's current state
	ErrInvalidTransition = workflow.ErrInvalidTransition

	// ErrMissingContent is returned when approving a post that has no text
	ErrMissingContent = errors.New("post has no content")

	// ErrMissingAuthor is returned when approving a post that has no author
	ErrMissingAuthor = errors.New("post has no author")
)
