// Package service implements the gallery upload pipeline.
package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"strings"

	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder

	"gallery/internal/config"
	"gallery/internal/middleware"
	"gallery/internal/models"
	"gallery/internal/repository"
	"gallery/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMaxUploadSizeMB = 10
	MasterMaxSize          = 2048
	ThumbnailSize          = 256
	JPEGQuality            = 82
	WebPQuality            = 70
)

// UploadInput carries one bound upload form submission into the pipeline.
type UploadInput struct {
	Caption     string
	Filename    string
	ContentType string
	Content     []byte
}

// UploadService validates uploaded images, stores the master file and a webp
// thumbnail, and creates the Post record. A failure after files were written
// removes them again; there is no retry.
type UploadService struct {
	repo               repository.PostRepository
	store              *storage.FileStore
	maxUploadSizeBytes int64
}

// NewUploadService creates an UploadService backed by the given repository and file store.
func NewUploadService(repo repository.PostRepository, store *storage.FileStore, cfg *config.Config) *UploadService {
	maxUploadSizeMB := DefaultMaxUploadSizeMB
	if cfg != nil && cfg.MaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.MaxUploadSizeMB
	}
	return &UploadService{
		repo:               repo,
		store:              store,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// MaxUploadSizeBytes returns the configured upload size cap.
func (s *UploadService) MaxUploadSizeBytes() int64 {
	return s.maxUploadSizeBytes
}

// Upload runs the full pipeline for a validated form submission.
// Validation failures come back as VALIDATION_ERROR AppErrors so the form can
// surface them inline; anything else is an internal error.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*models.Post, error) {
	if len(in.Content) == 0 {
		middleware.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		middleware.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("File too large")
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		middleware.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		middleware.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		middleware.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	encodedMaster, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		middleware.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	thumb := resizeToFit(master, ThumbnailSize, ThumbnailSize)
	encodedThumb, err := encodeWebP(thumb, WebPQuality)
	if err != nil {
		middleware.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	id := uuid.NewString()
	masterRel := id + "/master.jpg"
	thumbRel := id + "/thumb.webp"

	if err := s.store.Write(masterRel, encodedMaster); err != nil {
		middleware.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	if err := s.store.Write(thumbRel, encodedThumb); err != nil {
		s.store.Remove(masterRel)
		middleware.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	bounds := master.Bounds()
	post := &models.Post{
		Caption:          in.Caption,
		ImagePath:        masterRel,
		ThumbnailPath:    thumbRel,
		OriginalFilename: in.Filename,
		MimeType:         "image/jpeg",
		SizeBytes:        int64(len(encodedMaster)),
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.store.Remove(masterRel, thumbRel)
		middleware.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	middleware.UploadsTotal.WithLabelValues("accepted").Inc()
	return post, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}
