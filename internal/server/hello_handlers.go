package server

import (
	"gallery/internal/forms"
	"gallery/internal/middleware"
	"gallery/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MessageList renders the hello index with every stored message and an empty
// message form.
func (s *Server) MessageList(c *fiber.Ctx) error {
	return s.renderMessageList(c, forms.NewMessageForm())
}

// CreateMessage binds and validates the submitted message form. A valid
// submission stores a message and redirects back to the list; an invalid one
// re-renders the list with field errors.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	form := forms.BindMessage(c)

	if form.IsValid() {
		message, err := form.Save(c.Context(), s.messageRepo)
		if err != nil {
			middleware.Logger.ErrorContext(c.Context(), "Failed to store message", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		middleware.Logger.InfoContext(c.Context(), "Message stored", "message_id", message.ID)
		return c.Redirect("/hello/", fiber.StatusSeeOther)
	}

	return s.renderMessageList(c, form)
}

// SecondPage renders the hello app's static second view.
func (s *Server) SecondPage(c *fiber.Ctx) error {
	return c.Render("hello/second", fiber.Map{
		"Title": "Second",
	})
}

func (s *Server) renderMessageList(c *fiber.Ctx, form *forms.MessageForm) error {
	messages, err := s.messageRepo.List(c.Context())
	if err != nil {
		middleware.Logger.ErrorContext(c.Context(), "Failed to list messages", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Render("hello/index", fiber.Map{
		"Title":    "Messages",
		"Messages": messages,
		"Form":     form,
	})
}
