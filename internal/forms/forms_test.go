package forms

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gallery/internal/config"
	"gallery/internal/service"
	"gallery/internal/storage"
	"gallery/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, caption string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if caption != "" {
		require.NoError(t, writer.WriteField("caption", caption))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// bindUploadViaRequest runs BindUpload inside a real request cycle and hands
// the bound form back to the test.
func bindUploadViaRequest(t *testing.T, body *bytes.Buffer, contentType string) *UploadForm {
	t.Helper()
	var form *UploadForm
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		form = BindUpload(c)
		form.IsValid()
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.NotNil(t, form)
	return form
}

func TestUploadFormBindAndSave(t *testing.T) {
	body, contentType := multipartUpload(t, "my cat", "cat.png", testutil.TinyPNG(t, 400, 300))
	form := bindUploadViaRequest(t, body, contentType)

	assert.True(t, form.Bound())
	assert.True(t, form.IsValid(), "errors: %v", form.Errors())
	assert.Equal(t, "my cat", form.Caption)

	repo := testutil.NewPostRepoStub()
	svc := service.NewUploadService(repo, storage.NewFileStore(t.TempDir()), &config.Config{MaxUploadSizeMB: 10})

	post, err := form.Save(context.Background(), svc)
	assert.NoError(t, err)
	assert.Equal(t, "my cat", post.Caption)
	assert.Equal(t, "cat.png", post.OriginalFilename)
}

func TestUploadFormMissingFile(t *testing.T) {
	body, contentType := multipartUpload(t, "no file here", "", nil)
	form := bindUploadViaRequest(t, body, contentType)

	assert.False(t, form.IsValid())
	assert.Equal(t, "This field is required.", form.ErrorFor("image"))
}

func TestUploadFormRejectsNonImageThroughSave(t *testing.T) {
	body, contentType := multipartUpload(t, "", "notes.txt", []byte("plain text pretending to be an image"))
	form := bindUploadViaRequest(t, body, contentType)
	assert.True(t, form.IsValid(), "presence validation should pass")

	repo := testutil.NewPostRepoStub()
	svc := service.NewUploadService(repo, storage.NewFileStore(t.TempDir()), &config.Config{MaxUploadSizeMB: 10})

	_, err := form.Save(context.Background(), svc)
	assert.Error(t, err)
	assert.NotEmpty(t, form.ErrorFor("image"))

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestUploadFormCaptionTooLong(t *testing.T) {
	body, contentType := multipartUpload(t, strings.Repeat("x", 251), "cat.png", testutil.TinyPNG(t, 10, 10))
	form := bindUploadViaRequest(t, body, contentType)

	assert.False(t, form.IsValid())
	assert.NotEmpty(t, form.ErrorFor("caption"))
}

func TestMessageFormValidation(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"Valid", "hello world", true},
		{"Empty", "", false},
		{"Too long", strings.Repeat("x", 251), false},
		{"At limit", strings.Repeat("x", 250), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &MessageForm{MessageText: tt.text}
			assert.Equal(t, tt.valid, form.IsValid())
		})
	}
}

func TestMessageFormSave(t *testing.T) {
	form := &MessageForm{MessageText: "stored"}
	require.True(t, form.IsValid())

	repo := testutil.NewMessageRepoStub()
	message, err := form.Save(context.Background(), repo)
	assert.NoError(t, err)
	assert.Equal(t, "stored", message.MessageText)

	stored, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
}
