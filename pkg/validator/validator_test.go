package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleRequest struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Status   string `validate:"omitempty,oneof=draft published archived"`
}

func TestMessages(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleRequest{Username: "ab", Email: "nope", Status: "hidden"})
	if err == nil {
		t.Fatalf("expected validation failures")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected a field-level validation error")
	}

	messages := Messages(err)
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3: %v", len(messages), messages)
	}

	joined := strings.Join(messages, "; ")
	for _, want := range []string{
		"username must be at least 3 characters",
		"email must be a valid email address",
		"status must be one of: draft published archived",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("messages missing %q: %v", want, messages)
		}
	}
}

func TestMessagesRequired(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleRequest{})
	if err == nil {
		t.Fatalf("expected validation failures")
	}

	joined := strings.Join(Messages(err), "; ")
	if !strings.Contains(joined, "username is required") {
		t.Errorf("missing required message: %q", joined)
	}
}

func TestNonValidationError(t *testing.T) {
	err := errors.New("unexpected EOF")
	if IsValidationError(err) {
		t.Fatalf("plain error misclassified as validation failure")
	}

	messages := Messages(err)
	if len(messages) != 1 || messages[0] != "unexpected EOF" {
		t.Fatalf("unexpected messages: %v", messages)
	}
}
