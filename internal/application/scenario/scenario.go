// Package scenario runs scripted review workflows.
//
// A Scenario declares authors and a list of posts; each post is an ordered
// list of steps applied to a runtime post.Post. Because the steps are data,
// an illegal step (approving a draft, editing a post under review) is only
// detected while running: the runner records the error on that post and moves
// on to the next one.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/garyjia/post-review/internal/domain/workflow"
)

// Action names used in scenario files
const (
	ActionAddText       = "add_text"
	ActionAddAuthor     = "add_author"
	ActionRequestReview = "request_review"
	ActionApprove       = "approve"
	ActionReject        = "reject"
)

var actionTriggers = map[string]workflow.Trigger{
	ActionAddText:       workflow.TriggerAddText,
	ActionAddAuthor:     workflow.TriggerAddAuthor,
	ActionRequestReview: workflow.TriggerRequestReview,
	ActionApprove:       workflow.TriggerApprove,
	ActionReject:        workflow.TriggerReject,
}

// AuthorSpec declares an author by name
type AuthorSpec struct {
	Firstname string `mapstructure:"firstname"`
	Lastname  string `mapstructure:"lastname"`
}

// Step is one operation on a post
type Step struct {
	Action  string `mapstructure:"action"`
	Text    string `mapstructure:"text"`
	Message string `mapstructure:"message"`
	Author  string `mapstructure:"author"` // key into Scenario.Authors
}

// PostSpec is a named sequence of steps
type PostSpec struct {
	Name  string `mapstructure:"name"`
	Steps []Step `mapstructure:"steps"`
}

// Scenario is a set of authors and the posts that use them.
// Author keys are case-insensitive.
type Scenario struct {
	Authors map[string]AuthorSpec `mapstructure:"authors"`
	Posts   []PostSpec            `mapstructure:"posts"`
}

// Trigger maps the step's action to a workflow trigger
func (s Step) Trigger() (workflow.Trigger, error) {
	trigger, ok := actionTriggers[strings.ToLower(s.Action)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
	return trigger, nil
}

// LoadFile reads a scenario from a YAML, JSON or TOML file
func LoadFile(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return Scenario{}, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return s, nil
}

// Validate checks that every step names a known action and every author
// reference is declared. It does not check that the step order is legal.
func (s Scenario) Validate() error {
	if len(s.Posts) == 0 {
		return ErrEmptyScenario
	}

	for i, p := range s.Posts {
		for j, step := range p.Steps {
			trigger, err := step.Trigger()
			if err != nil {
				return fmt.Errorf("post %d (%s) step %d: %w", i, p.Name, j, err)
			}
			if trigger != workflow.TriggerAddAuthor {
				continue
			}
			if _, ok := s.author(step.Author); !ok {
				return fmt.Errorf("post %d (%s) step %d: %w: %q", i, p.Name, j, ErrUnknownAuthor, step.Author)
			}
		}
	}

	return nil
}

func (s Scenario) author(key string) (AuthorSpec, bool) {
	key = strings.ToLower(key)
	for k, a := range s.Authors {
		if strings.ToLower(k) == key {
			return a, true
		}
	}
	return AuthorSpec{}, false
}

// Default returns the example posts the CLI runs when no scenario file is given
func Default() Scenario {
	return Scenario{
		Authors: map[string]AuthorSpec{
			"mc": {Firstname: "Michael", Lastname: "Cane"},
			"jj": {Firstname: "Jesse", Lastname: "James"},
			"mj": {Firstname: "Michael", Lastname: "Jackson"},
		},
		Posts: []PostSpec{
			{
				Name: "michael-cane",
				Steps: []Step{
					{Action: ActionAddText, Text: "Hello, this is Michael."},
					{Action: ActionAddText, Text: "Listen to my little story."},
					{Action: ActionRequestReview},
					{Action: ActionReject, Message: "Please add a story"},
					{Action: ActionAddText, Text: "Okay, I'll tell you next time actually."},
					{Action: ActionRequestReview},
					{Action: ActionReject, Message: "Please add an author"},
					{Action: ActionAddAuthor, Author: "mc"},
					{Action: ActionRequestReview},
					{Action: ActionApprove},
				},
			},
			{
				Name: "jesse-james",
				Steps: []Step{
					{Action: ActionAddAuthor, Author: "jj"},
					{Action: ActionAddText, Text: "Hi, it's Jesse speaking."},
					{Action: ActionAddText, Text: "Do you want to know a good one?"},
					{Action: ActionAddText, Text: "Disclaimer: I'm not that good at telling jokes."},
					{Action: ActionRequestReview},
					{Action: ActionApprove},
				},
			},
			{
				Name: "michael-jackson",
				Steps: []Step{
					{Action: ActionAddAuthor, Author: "mj"},
					{Action: ActionAddText, Text: "Hey there it's Michael Jackson."},
					{Action: ActionAddText, Text: "Hey pretty baby with the high heels on"},
					{Action: ActionAddText, Text: "You give me fever like I've never, ever known"},
					{Action: ActionRequestReview},
					{Action: ActionApprove},
				},
			},
		},
	}
}
