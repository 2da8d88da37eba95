// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"time"

	"gallery/internal/models"
	"gallery/internal/repository"
	"gallery/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder creates demo messages and gallery posts.
type Seeder struct {
	db          *gorm.DB
	messageRepo repository.MessageRepository
	uploads     *service.UploadService
	rng         *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided DB and upload pipeline.
func NewSeeder(db *gorm.DB, messageRepo repository.MessageRepository, uploads *service.UploadService) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:          db,
		messageRepo: messageRepo,
		uploads:     uploads,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every message and post. Media files on disk are left in
// place; orphaned directories are harmless in development.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Message{}).Error; err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

// CreateMessages stores n fake messages with a realistic created_at spread.
func (s *Seeder) CreateMessages(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		text := gofakeit.Sentence(4 + s.rng.Intn(8))
		if len(text) > 250 {
			text = text[:250]
		}
		message := &models.Message{
			MessageText: text,
			CreatedAt:   s.spreadTime(),
		}
		if err := s.messageRepo.Create(ctx, message); err != nil {
			return fmt.Errorf("create message %d: %w", i, err)
		}
	}
	return nil
}

// CreatePosts generates n demo images and runs each through the real upload
// pipeline so media files, thumbnails and records stay consistent.
func (s *Seeder) CreatePosts(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		content, err := s.demoImage(320+s.rng.Intn(640), 240+s.rng.Intn(480))
		if err != nil {
			return fmt.Errorf("generate image %d: %w", i, err)
		}

		_, err = s.uploads.Upload(ctx, service.UploadInput{
			Caption:     gofakeit.Sentence(3 + s.rng.Intn(5)),
			Filename:    fmt.Sprintf("%s.png", gofakeit.Word()),
			ContentType: "image/png",
			Content:     content,
		})
		if err != nil {
			return fmt.Errorf("upload demo image %d: %w", i, err)
		}
	}
	return nil
}

func (s *Seeder) spreadTime() time.Time {
	daysBack := s.rng.Intn(90)
	minsBack := s.rng.Intn(24 * 60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
}

// demoImage renders a two-tone gradient PNG so seeded posts are visually
// distinct in the gallery.
func (s *Seeder) demoImage(width, height int) ([]byte, error) {
	from := color.RGBA{R: uint8(s.rng.Intn(256)), G: uint8(s.rng.Intn(256)), B: uint8(s.rng.Intn(256)), A: 255}
	to := color.RGBA{R: uint8(s.rng.Intn(256)), G: uint8(s.rng.Intn(256)), B: uint8(s.rng.Intn(256)), A: 255}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		row := color.RGBA{
			R: uint8(float64(from.R)*(1-t) + float64(to.R)*t),
			G: uint8(float64(from.G)*(1-t) + float64(to.G)*t),
			B: uint8(float64(from.B)*(1-t) + float64(to.B)*t),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, row)
		}
	}

	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
