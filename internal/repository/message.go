// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"gallery/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	List(ctx context.Context) ([]*models.Message, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) List(ctx context.Context) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&messages).Error
	return messages, err
}
