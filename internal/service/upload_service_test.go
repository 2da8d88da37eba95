package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"gallery/internal/config"
	"gallery/internal/models"
	"gallery/internal/storage"
	"gallery/internal/testutil"
)

func TestUploadServiceStoresFilesAndRecord(t *testing.T) {
	repo := testutil.NewPostRepoStub()
	store := storage.NewFileStore(t.TempDir())
	svc := NewUploadService(repo, store, &config.Config{MaxUploadSizeMB: 10})

	content := testutil.TinyPNG(t, 1200, 800)
	post, err := svc.Upload(context.Background(), UploadInput{
		Caption:     "a cat",
		Filename:    "cat.png",
		ContentType: "image/png",
		Content:     content,
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if post.ID == 0 {
		t.Fatalf("expected persisted post, got %+v", post)
	}
	if post.Caption != "a cat" || post.OriginalFilename != "cat.png" {
		t.Fatalf("unexpected metadata: %+v", post)
	}
	if post.MimeType != "image/jpeg" {
		t.Fatalf("expected master normalized to jpeg, got %s", post.MimeType)
	}

	for _, rel := range []string{post.ImagePath, post.ThumbnailPath} {
		if _, statErr := os.Stat(store.Abs(rel)); statErr != nil {
			t.Fatalf("expected stored file at %s: %v", rel, statErr)
		}
	}
}

func TestUploadServiceNormalizesOversizedImages(t *testing.T) {
	repo := testutil.NewPostRepoStub()
	store := storage.NewFileStore(t.TempDir())
	svc := NewUploadService(repo, store, &config.Config{MaxUploadSizeMB: 50})

	content := testutil.TinyPNG(t, 4000, 3000)
	post, err := svc.Upload(context.Background(), UploadInput{
		Filename:    "huge.png",
		ContentType: "image/png",
		Content:     content,
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if post.Width > MasterMaxSize || post.Height > MasterMaxSize {
		t.Fatalf("expected dimensions <= %d, got %dx%d", MasterMaxSize, post.Width, post.Height)
	}
}

func TestUploadServiceRejectsInvalidInput(t *testing.T) {
	repo := testutil.NewPostRepoStub()
	store := storage.NewFileStore(t.TempDir())
	svc := NewUploadService(repo, store, &config.Config{MaxUploadSizeMB: 1})

	tests := []struct {
		name    string
		content []byte
	}{
		{"Empty", nil},
		{"Not an image", []byte("definitely not image bytes, just plain text padded out")},
		{"Too large", make([]byte, 2*1024*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), UploadInput{
				Filename: "bad.bin",
				Content:  tt.content,
			})
			var appErr *models.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %s", appErr.Code)
			}
		})
	}

	if count, _ := repo.Count(context.Background()); count != 0 {
		t.Fatalf("expected no posts persisted, got %d", count)
	}
}

func TestUploadServiceCleansUpFilesWhenCreateFails(t *testing.T) {
	repo := testutil.NewPostRepoStub()
	repo.FailCreate = true
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	svc := NewUploadService(repo, store, &config.Config{MaxUploadSizeMB: 10})

	_, err := svc.Upload(context.Background(), UploadInput{
		Filename:    "cat.png",
		ContentType: "image/png",
		Content:     testutil.TinyPNG(t, 300, 200),
	})
	if err == nil {
		t.Fatal("expected error from failing repository")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read media root: %v", readErr)
	}
	for _, e := range entries {
		sub, subErr := os.ReadDir(dir + "/" + e.Name())
		if subErr != nil {
			t.Fatalf("read media subdir: %v", subErr)
		}
		if len(sub) != 0 {
			t.Fatalf("expected orphaned files removed, found %d in %s", len(sub), e.Name())
		}
	}
}
