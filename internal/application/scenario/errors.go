package scenario

import "errors"

var (
	// ErrEmptyScenario is returned when a scenario has no posts
	ErrEmptyScenario = errors.New("scenario has no posts")

	// ErrUnknownAction is returned when a step names an action that does not exist
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownAuthor is returned when a step references an author that is not declared
	ErrUnknownAuthor = errors.New("unknown author")
)
