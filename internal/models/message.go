// Package models contains data structures for the application's domain records.
package models

import "time"

// Message is a demo record in the hello app. It has no relations.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MessageText string    `gorm:"size:250;not null" json:"message_text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m Message) String() string {
	return m.MessageText
}
