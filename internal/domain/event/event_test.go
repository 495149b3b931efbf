package event

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/post-review/internal/domain/workflow"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		want      string
	}{
		{name: "post created", eventType: TypePostCreated, want: "post.created"},
		{name: "text added", eventType: TypeTextAdded, want: "post.text_added"},
		{name: "author added", eventType: TypeAuthorAdded, want: "post.author_added"},
		{name: "review requested", eventType: TypeReviewRequested, want: "post.review_requested"},
		{name: "post approved", eventType: TypePostApproved, want: "post.approved"},
		{name: "post rejected", eventType: TypePostRejected, want: "post.rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eventType.String(); got != tt.want {
				t.Errorf("Type.String() = %v, want %v", got, tt.want)
			}
			if !tt.eventType.IsValid() {
				t.Errorf("Type.IsValid() = false for %v", tt.eventType)
			}
		})
	}
}

func TestType_IsValid_Unknown(t *testing.T) {
	for _, eventType := range []Type{"unknown.type", ""} {
		if eventType.IsValid() {
			t.Errorf("Type.IsValid() = true for %q", eventType)
		}
	}
}

func TestTypeForTrigger(t *testing.T) {
	tests := []struct {
		trigger workflow.Trigger
		want    Type
		ok      bool
	}{
		{workflow.TriggerAddText, TypeTextAdded, true},
		{workflow.TriggerAddAuthor, TypeAuthorAdded, true},
		{workflow.TriggerRequestReview, TypeReviewRequested, true},
		{workflow.TriggerApprove, TypePostApproved, true},
		{workflow.TriggerReject, TypePostRejected, true},
		{workflow.Trigger("PUBLISH"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			got, ok := TypeForTrigger(tt.trigger)
			if got != tt.want || ok != tt.ok {
				t.Errorf("TypeForTrigger() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	postID := uuid.New()
	payload := map[string]interface{}{
		"message": "needs a story",
	}

	event := NewEvent(TypePostRejected, postID, workflow.StateDraft, payload)

	if event == nil {
		t.Fatal("NewEvent() returned nil")
	}
	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Type != TypePostRejected {
		t.Errorf("Event Type = %v, want %v", event.Type, TypePostRejected)
	}
	if event.PostID != postID {
		t.Errorf("Event PostID = %v, want %v", event.PostID, postID)
	}
	if event.State != workflow.StateDraft {
		t.Errorf("Event State = %v, want %v", event.State, workflow.StateDraft)
	}
	if event.GetPayloadString("message") != "needs a story" {
		t.Errorf("Event Payload[message] = %v, want %v", event.Payload["message"], "needs a story")
	}
	if event.CorrelationID == "" {
		t.Error("Event CorrelationID should not be empty")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("Event Timestamp should be recent")
	}
}

func TestEvent_WithPayload(t *testing.T) {
	original := NewEvent(TypeTextAdded, uuid.New(), workflow.StateDraft, map[string]interface{}{
		"characters": 5,
	})

	modified := original.WithPayload("text", "Hello")

	if _, exists := original.Payload["text"]; exists {
		t.Error("Original event should not be modified")
	}
	if modified.GetPayloadInt("characters") != 5 {
		t.Error("Modified event should retain original payload")
	}
	if modified.GetPayloadString("text") != "Hello" {
		t.Error("Modified event should have new payload")
	}
	if modified.ID != original.ID || modified.PostID != original.PostID || modified.CorrelationID != original.CorrelationID {
		t.Error("Modified event should keep identity fields")
	}
}

func TestEvent_GetPayloadInt(t *testing.T) {
	event := NewEvent(TypeTextAdded, uuid.New(), workflow.StateDraft, map[string]interface{}{
		"int64":   int64(100),
		"int":     50,
		"float64": 75.5,
		"string":  "not a number",
	})

	tests := []struct {
		key  string
		want int64
	}{
		{"int64", 100},
		{"int", 50},
		{"float64", 75},
		{"string", 0},
		{"nonexistent", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := event.GetPayloadInt(tt.key); got != tt.want {
				t.Errorf("GetPayloadInt(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestEvent_CorrelationChain(t *testing.T) {
	postID := uuid.New()
	first := NewEvent(TypePostCreated, postID, workflow.StateDraft, nil)
	second := NewEventWithCorrelation(TypeReviewRequested, postID, workflow.StatePendingReview, nil, first.CorrelationID)

	if second.CorrelationID != first.CorrelationID {
		t.Error("Events should share the correlation ID")
	}
	if first.ID == second.ID {
		t.Error("Events should have unique IDs even with same correlation ID")
	}
}
