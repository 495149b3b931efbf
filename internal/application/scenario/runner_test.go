package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/post-review/internal/application/dispatcher"
	"github.com/garyjia/post-review/internal/domain/event"
	"github.com/garyjia/post-review/internal/domain/post"
	"github.com/garyjia/post-review/internal/domain/workflow"
)

func TestRunner_Default(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	results, err := runner.Run(context.Background(), Default())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.True(t, r.Finished(), "post %s should be approved", r.Name)
		assert.NoError(t, r.Err)
		assert.Equal(t, -1, r.FailedStep)
	}

	cane := results[0]
	content, err := cane.Post.Content()
	require.NoError(t, err)
	assert.Equal(t, "Hello, this is Michael.\nListen to my little story.\nOkay, I'll tell you next time actually.", content)

	name, err := cane.Post.Author()
	require.NoError(t, err)
	assert.Equal(t, "Michael Cane", name)

	assert.Equal(t, strings.Join([]string{
		"0 -> Draft created",
		"1 -> 23 characters of text added",
		"2 -> 26 characters of text added",
		"3 -> Review requested",
		"4 -> Draft rejected with message: 'Please add a story'",
		"5 -> 39 characters of text added",
		"6 -> Review requested",
		"7 -> Draft rejected with message: 'Please add an author'",
		"8 -> Author added: Michael Cane",
		"9 -> Review requested",
		"10 -> Draft approved",
	}, "\n"), cane.Post.History())

	name, err = results[1].Post.Author()
	require.NoError(t, err)
	assert.Equal(t, "Jesse James", name)
}

func TestRunner_Events(t *testing.T) {
	results, err := NewRunner(zap.NewNop()).Run(context.Background(), Default())
	require.NoError(t, err)

	jj := results[1]
	require.Len(t, jj.Events, 7)

	types := make([]event.Type, len(jj.Events))
	for i, e := range jj.Events {
		types[i] = e.Type
		assert.Equal(t, jj.Post.ID(), e.PostID)
		assert.Equal(t, jj.Post.ID().String(), e.CorrelationID)
	}
	assert.Equal(t, []event.Type{
		event.TypePostCreated,
		event.TypeAuthorAdded,
		event.TypeTextAdded,
		event.TypeTextAdded,
		event.TypeTextAdded,
		event.TypeReviewRequested,
		event.TypePostApproved,
	}, types)

	assert.Equal(t, "Jesse James", jj.Events[1].GetPayloadString("author"))
	assert.Equal(t, int64(24), jj.Events[2].GetPayloadInt("characters"))
	assert.Equal(t, workflow.StateApproved, jj.Events[6].State)
}

func TestRunner_StopsPostAtInvalidStep(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	runner := NewRunner(zap.New(core))

	s := Scenario{
		Authors: map[string]AuthorSpec{"mc": {Firstname: "Michael", Lastname: "Cane"}},
		Posts: []PostSpec{
			{
				Name: "approve-draft",
				Steps: []Step{
					{Action: ActionAddText, Text: "Hi"},
					{Action: ActionApprove},
					{Action: ActionAddText, Text: "never applied"},
				},
			},
			{
				Name: "missing-author",
				Steps: []Step{
					{Action: ActionAddText, Text: "Hi"},
					{Action: ActionRequestReview},
					{Action: ActionApprove},
				},
			},
			{
				Name: "ok",
				Steps: []Step{
					{Action: ActionAddAuthor, Author: "mc"},
					{Action: ActionAddText, Text: "Hi"},
					{Action: ActionRequestReview},
					{Action: ActionApprove},
				},
			},
		},
	}

	results, err := runner.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 3)

	first := results[0]
	assert.False(t, first.Finished())
	assert.ErrorIs(t, first.Err, post.ErrInvalidTransition)
	assert.Equal(t, 1, first.FailedStep)
	assert.Equal(t, workflow.StateDraft, first.Post.State())
	assert.Equal(t, 2, first.Post.Log().Len())
	assert.Len(t, first.Events, 2)

	second := results[1]
	assert.ErrorIs(t, second.Err, post.ErrMissingAuthor)
	assert.Equal(t, 2, second.FailedStep)
	assert.Equal(t, workflow.StatePendingReview, second.Post.State())

	assert.True(t, results[2].Finished())

	assert.Equal(t, 2, logs.FilterMessage("Step failed").Len())
}

func TestRunner_NilLogger(t *testing.T) {
	var results []Result
	require.NotPanics(t, func() {
		var err error
		results, err = NewRunner(nil).Run(context.Background(), Default())
		require.NoError(t, err)
	})
	require.Len(t, results, 3)
	assert.True(t, results[0].Finished())
}

func TestRunner_InvalidScenario(t *testing.T) {
	_, err := NewRunner(zap.NewNop()).Run(context.Background(), Scenario{})

	assert.ErrorIs(t, err, ErrEmptyScenario)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewRunner(zap.NewNop()).Run(ctx, Default())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunner_SharedAuthor(t *testing.T) {
	s := Scenario{
		Authors: map[string]AuthorSpec{"mc": {Firstname: "Michael", Lastname: "Cane"}},
		Posts: []PostSpec{
			{Name: "a", Steps: []Step{{Action: ActionAddAuthor, Author: "mc"}, {Action: ActionAddText, Text: "a"}, {Action: ActionRequestReview}, {Action: ActionApprove}}},
			{Name: "b", Steps: []Step{{Action: ActionAddAuthor, Author: "MC"}, {Action: ActionAddText, Text: "b"}, {Action: ActionRequestReview}, {Action: ActionApprove}}},
		},
	}

	results, err := NewRunner(zap.NewNop()).Run(context.Background(), s)
	require.NoError(t, err)

	for _, r := range results {
		name, err := r.Post.Author()
		require.NoError(t, err)
		assert.Equal(t, "Michael Cane", name)
	}
	assert.NotEqual(t, results[0].Post.ID(), results[1].Post.ID())
}

func TestRunner_PublishesEvents(t *testing.T) {
	d := dispatcher.NewDispatcher()
	var rejections []string
	approved := 0

	d.Subscribe(event.TypePostRejected, func(ctx context.Context, evt *event.Event) error {
		rejections = append(rejections, evt.GetPayloadString("message"))
		return nil
	})
	d.Subscribe(event.TypePostApproved, func(ctx context.Context, evt *event.Event) error {
		approved++
		return nil
	})

	_, err := NewRunner(zap.NewNop(), WithDispatcher(d)).Run(context.Background(), Default())
	require.NoError(t, err)

	assert.Equal(t, []string{"Please add a story", "Please add an author"}, rejections)
	assert.Equal(t, 3, approved)
}

func TestRunner_HandlerFailureAbortsRun(t *testing.T) {
	d := dispatcher.NewDispatcher()
	boom := errors.New("audit sink unavailable")
	d.Subscribe(event.TypePostApproved, func(ctx context.Context, evt *event.Event) error {
		return boom
	})

	results, err := NewRunner(zap.NewNop(), WithDispatcher(d)).Run(context.Background(), Default())

	assert.ErrorIs(t, err, boom)
	require.Len(t, results, 1)
	assert.True(t, results[0].Finished())
}
