package scenario

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/garyjia/post-review/internal/application/dispatcher"
	"github.com/garyjia/post-review/internal/domain/author"
	"github.com/garyjia/post-review/internal/domain/event"
	"github.com/garyjia/post-review/internal/domain/post"
	"github.com/garyjia/post-review/internal/domain/workflow"
)

// Result is the outcome of running one post
type Result struct {
	Name   string
	Post   post.Post
	Events []*event.Event

	// Err is the error of the first failing step; FailedStep is its index, or -1
	Err        error
	FailedStep int
}

// Finished reports whether the post reached the approved state
func (r Result) Finished() bool {
	return r.Post.State() == workflow.StateApproved
}

// Runner applies scenarios to posts
type Runner struct {
	logger     *zap.Logger
	dispatcher dispatcher.Dispatcher
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithDispatcher publishes every event the runner records to d
func WithDispatcher(d dispatcher.Dispatcher) RunnerOption {
	return func(r *Runner) {
		r.dispatcher = d
	}
}

// NewRunner creates a new scenario runner. A nil logger discards output.
func NewRunner(logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates s and applies every post's steps in order. A post stops at
// its first failing step; the remaining posts still run. The returned error
// covers validation, cancellation and event handler failures.
func (r *Runner) Run(ctx context.Context, s Scenario) ([]Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	// one shared, read-only Author per key
	authors := make(map[string]*author.Author, len(s.Authors))
	for key, spec := range s.Authors {
		a := author.New().AddFirstname(spec.Firstname).AddLastname(spec.Lastname)
		authors[strings.ToLower(key)] = &a
	}

	results := make([]Result, 0, len(s.Posts))
	for _, spec := range s.Posts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := r.runPost(ctx, spec, authors)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func (r *Runner) runPost(ctx context.Context, spec PostSpec, authors map[string]*author.Author) (Result, error) {
	p := post.Start()
	correlationID := p.ID().String()
	logger := r.logger.With(zap.String("post", spec.Name), zap.String("post_id", correlationID))

	result := Result{Name: spec.Name, Post: p, FailedStep: -1}
	if err := r.record(ctx, &result, event.NewEventWithCorrelation(event.TypePostCreated, p.ID(), p.State(), nil, correlationID)); err != nil {
		return result, err
	}
	logger.Debug("Post created")

	for i, step := range spec.Steps {
		action, payload, err := r.action(step, authors)
		if err == nil {
			p, err = p.Apply(action)
		}
		if err != nil {
			logger.Warn("Step failed",
				zap.Int("step", i),
				zap.String("action", step.Action),
				zap.String("state", p.State().String()),
				zap.Error(err))
			result.Err = fmt.Errorf("step %d (%s): %w", i, step.Action, err)
			result.FailedStep = i
			break
		}

		result.Post = p
		eventType, _ := event.TypeForTrigger(action.Trigger)
		if err := r.record(ctx, &result, event.NewEventWithCorrelation(eventType, p.ID(), p.State(), payload, correlationID)); err != nil {
			return result, err
		}

		logger.Debug("Step applied",
			zap.Int("step", i),
			zap.String("action", step.Action),
			zap.String("state", p.State().String()))
	}

	if result.Finished() {
		logger.Info("Post approved", zap.Int("history_entries", p.Log().Len()))
	} else if result.Err == nil {
		logger.Info("Post not approved", zap.String("state", p.State().String()))
	}

	return result, nil
}

// record appends evt to the result and publishes it
func (r *Runner) record(ctx context.Context, result *Result, evt *event.Event) error {
	result.Events = append(result.Events, evt)
	if r.dispatcher == nil {
		return nil
	}
	if err := r.dispatcher.Dispatch(ctx, evt); err != nil {
		return fmt.Errorf("post %s: %w", result.Name, err)
	}
	return nil
}

// action converts a scenario step into a post action and its event payload
func (r *Runner) action(step Step, authors map[string]*author.Author) (post.Action, map[string]interface{}, error) {
	trigger, err := step.Trigger()
	if err != nil {
		return post.Action{}, nil, err
	}

	action := post.Action{Trigger: trigger}
	var payload map[string]interface{}

	switch trigger {
	case workflow.TriggerAddText:
		action.Text = step.Text
		payload = map[string]interface{}{"characters": utf8.RuneCountInString(step.Text)}
	case workflow.TriggerAddAuthor:
		a, err := lookupAuthor(step.Author, authors)
		if err != nil {
			return post.Action{}, nil, err
		}
		action.Author = a
		payload = map[string]interface{}{"author": a.String()}
	case workflow.TriggerReject:
		action.Message = step.Message
		payload = map[string]interface{}{"message": step.Message}
	}

	return action, payload, nil
}

func lookupAuthor(key string, authors map[string]*author.Author) (*author.Author, error) {
	a, ok := authors[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthor, key)
	}
	return a, nil
}
