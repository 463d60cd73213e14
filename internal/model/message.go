package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a one-directional direct message between two users.
type Message struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	SenderID   uuid.UUID `json:"sender" gorm:"type:char(36);not null;index"`
	ReceiverID uuid.UUID `json:"receiver" gorm:"type:char(36);not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	SentAt     time.Time `json:"sent_at" gorm:"autoCreateTime"`

	// Relations
	Sender   User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver User `json:"-" gorm:"foreignKey:ReceiverID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
