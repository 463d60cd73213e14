package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a named collection of users. Only members may post into it.
type Group struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Members []User `json:"members,omitempty" gorm:"many2many:group_members"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// HasMember reports whether the user id is in the member set.
func (g *Group) HasMember(id uuid.UUID) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}
