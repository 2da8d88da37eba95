package models

import "time"

// Post is an uploaded gallery image. Rows are only ever created through a
// validated upload form submission; there is no update or delete surface.
type Post struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Caption          string    `gorm:"size:250" json:"caption"`
	ImagePath        string    `gorm:"not null" json:"image_path"`
	ThumbnailPath    string    `json:"thumbnail_path"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	CreatedAt        time.Time `json:"created_at"`
}

// ImageURL is the public URL for the stored master image.
func (p Post) ImageURL() string {
	return "/media/" + p.ImagePath
}

// ThumbnailURL is the public URL for the thumbnail, falling back to the master image.
func (p Post) ThumbnailURL() string {
	if p.ThumbnailPath == "" {
		return p.ImageURL()
	}
	return "/media/" + p.ThumbnailPath
}
