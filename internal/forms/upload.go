// Package forms implements declarative binding and validation of submitted
// form data. A form is constructed unbound (for rendering an empty form) or
// bound to a request; a bound form validates into field-level errors and, when
// valid, saves into a record.
package forms

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"gallery/internal/models"
	"gallery/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxCaptionLen = 250

// UploadForm binds the gallery upload submission: an optional caption and the
// image file itself.
type UploadForm struct {
	Caption string

	file    *multipart.FileHeader
	content []byte
	bound   bool
	errors  map[string]string
}

// NewUploadForm returns an unbound form for rendering the empty upload page.
func NewUploadForm() *UploadForm {
	return &UploadForm{errors: map[string]string{}}
}

// BindUpload binds the form to the submitted fields and files of a request.
func BindUpload(c *fiber.Ctx) *UploadForm {
	f := NewUploadForm()
	f.bound = true
	f.Caption = strings.TrimSpace(c.FormValue("caption"))
	if file, err := c.FormFile("image"); err == nil {
		f.file = file
	}
	return f
}

// Bound reports whether the form was bound to a submission.
func (f *UploadForm) Bound() bool {
	return f.bound
}

// IsValid runs field validation and reports whether the submission passed.
// File content is read here so Save does not touch the request again.
func (f *UploadForm) IsValid() bool {
	f.errors = map[string]string{}

	if len(f.Caption) > maxCaptionLen {
		f.errors["caption"] = "Ensure this value has at most 250 characters."
	}

	if f.file == nil {
		f.errors["image"] = "This field is required."
		return false
	}

	src, err := f.file.Open()
	if err != nil {
		f.errors["image"] = "Unable to read uploaded file."
		return false
	}
	defer func() { _ = src.Close() }()

	f.content, err = io.ReadAll(src)
	if err != nil || len(f.content) == 0 {
		f.errors["image"] = "Unable to read uploaded file."
		return false
	}

	return len(f.errors) == 0
}

// Save runs the upload pipeline for a valid form. Pipeline-level validation
// failures (bad image type, oversized file) land back on the image field so
// the caller can re-render the form.
func (f *UploadForm) Save(ctx context.Context, svc *service.UploadService) (*models.Post, error) {
	post, err := svc.Upload(ctx, service.UploadInput{
		Caption:     f.Caption,
		Filename:    f.file.Filename,
		ContentType: f.file.Header.Get("Content-Type"),
		Content:     f.content,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			f.errors["image"] = appErr.Message
		}
		return nil, err
	}
	return post, nil
}

// Errors returns field-level validation errors keyed by field name.
func (f *UploadForm) Errors() map[string]string {
	return f.errors
}

// ErrorFor returns the validation error for a single field, if any.
func (f *UploadForm) ErrorFor(field string) string {
	return f.errors[field]
}
