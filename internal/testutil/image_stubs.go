// Package testutil provides shared test doubles and fixtures for tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"gallery/internal/models"

	"gorm.io/gorm"
)

// PostRepoStub is an in-memory post repository implementation for tests.
type PostRepoStub struct {
	items  []*models.Post
	nextID uint
	// FailCreate forces Create to error, simulating a storage-layer failure.
	FailCreate bool
}

// NewPostRepoStub creates an in-memory post repository stub for tests.
func NewPostRepoStub() *PostRepoStub {
	return &PostRepoStub{nextID: 1}
}

// Create stores the post in-memory.
func (s *PostRepoStub) Create(_ context.Context, post *models.Post) error {
	if s.FailCreate {
		return gorm.ErrInvalidDB
	}
	if post.ID == 0 {
		post.ID = s.nextID
		s.nextID++
	}
	post.CreatedAt = time.Now().UTC()
	s.items = append(s.items, post)
	return nil
}

// GetByID fetches a post by ID.
func (s *PostRepoStub) GetByID(_ context.Context, id uint) (*models.Post, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// List returns all stored posts in insertion order.
func (s *PostRepoStub) List(_ context.Context) ([]*models.Post, error) {
	return s.items, nil
}

// Count returns the number of stored posts.
func (s *PostRepoStub) Count(_ context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

// MessageRepoStub is an in-memory message repository implementation for tests.
type MessageRepoStub struct {
	items  []*models.Message
	nextID uint
	// FailCreate forces Create to error, simulating a storage-layer failure.
	FailCreate bool
}

// NewMessageRepoStub creates an in-memory message repository stub for tests.
func NewMessageRepoStub() *MessageRepoStub {
	return &MessageRepoStub{nextID: 1}
}

// Create stores the message in-memory.
func (s *MessageRepoStub) Create(_ context.Context, message *models.Message) error {
	if s.FailCreate {
		return gorm.ErrInvalidDB
	}
	if message.ID == 0 {
		message.ID = s.nextID
		s.nextID++
	}
	message.CreatedAt = time.Now().UTC()
	s.items = append(s.items, message)
	return nil
}

// List returns all stored messages in insertion order.
func (s *MessageRepoStub) List(_ context.Context) ([]*models.Message, error) {
	return s.items, nil
}

// TinyPNG returns an encoded solid-color PNG of the given dimensions.
func TinyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 90, G: 120, B: 180, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
