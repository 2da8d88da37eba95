package forms

import (
	"context"
	"strings"

	"gallery/internal/models"
	"gallery/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// MessageForm binds the hello app's message submission.
type MessageForm struct {
	MessageText string

	bound  bool
	errors map[string]string
}

// NewMessageForm returns an unbound message form.
func NewMessageForm() *MessageForm {
	return &MessageForm{errors: map[string]string{}}
}

// BindMessage binds the form to the submitted fields of a request.
func BindMessage(c *fiber.Ctx) *MessageForm {
	f := NewMessageForm()
	f.bound = true
	f.MessageText = strings.TrimSpace(c.FormValue("message_text"))
	return f
}

// Bound reports whether the form was bound to a submission.
func (f *MessageForm) Bound() bool {
	return f.bound
}

// IsValid runs field validation and reports whether the submission passed.
func (f *MessageForm) IsValid() bool {
	f.errors = map[string]string{}

	if f.MessageText == "" {
		f.errors["message_text"] = "This field is required."
	} else if len(f.MessageText) > maxCaptionLen {
		f.errors["message_text"] = "Ensure this value has at most 250 characters."
	}

	return len(f.errors) == 0
}

// Save persists the message for a valid form.
func (f *MessageForm) Save(ctx context.Context, repo repository.MessageRepository) (*models.Message, error) {
	message := &models.Message{MessageText: f.MessageText}
	if err := repo.Create(ctx, message); err != nil {
		return nil, models.NewInternalError(err)
	}
	return message, nil
}

// Errors returns field-level validation errors keyed by field name.
func (f *MessageForm) Errors() map[string]string {
	return f.errors
}

// ErrorFor returns the validation error for a single field, if any.
func (f *MessageForm) ErrorFor(field string) string {
	return f.errors[field]
}
