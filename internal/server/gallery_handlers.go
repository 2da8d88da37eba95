package server

import (
	"errors"

	"gallery/internal/forms"
	"gallery/internal/middleware"
	"gallery/internal/models"
	"gallery/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// PostList renders the gallery index with every stored post.
func (s *Server) PostList(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		middleware.Logger.ErrorContext(c.Context(), "Failed to list posts", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Render("gallery/index", fiber.Map{
		"Title": "Gallery",
		"Posts": posts,
	})
}

// ImageUploadPage renders the unbound upload form.
func (s *Server) ImageUploadPage(c *fiber.Ctx) error {
	return c.Render("gallery/upload", fiber.Map{
		"Title": "Upload an image",
		"Form":  forms.NewUploadForm(),
	})
}

// ImageUploadSubmit binds and validates the submitted form. A valid upload
// creates a post and redirects to the success page; an invalid one re-renders
// the form with field errors and creates nothing.
func (s *Server) ImageUploadSubmit(c *fiber.Ctx) error {
	form := forms.BindUpload(c)

	if form.IsValid() {
		post, err := form.Save(c.Context(), s.uploadService)
		if err == nil {
			middleware.Logger.InfoContext(c.Context(), "Image uploaded",
				"post_id", post.ID, "path", post.ImagePath)
			return c.Redirect("/success", fiber.StatusSeeOther)
		}

		// Pipeline validation failures were mapped onto the form; anything
		// else is a real server-side error.
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
			middleware.Logger.ErrorContext(c.Context(), "Upload failed", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.Status(fiber.StatusOK).Render("gallery/upload", fiber.Map{
		"Title": "Upload an image",
		"Form":  form,
	})
}

// UploadSuccess renders the static post-upload confirmation page.
func (s *Server) UploadSuccess(c *fiber.Ctx) error {
	return c.Render("gallery/success", fiber.Map{
		"Title": "Upload complete",
	})
}

// ServeMedia streams a stored media file. Paths are validated so the route
// cannot reach outside the media root.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	rel := c.Params("*")
	if !storage.ValidMediaPath(rel) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("media", rel))
	}
	if !s.store.Exists(rel) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("media", rel))
	}
	return c.SendFile(s.store.Abs(rel))
}
