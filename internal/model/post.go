package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported column type %T for StringList", value)
	}
}

// Post is a piece of content on the public feed or inside a group.
// A nil GroupID means the post belongs to the public feed.
type Post struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	AuthorID  uuid.UUID  `json:"author" gorm:"type:char(36);not null;index"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	Images    StringList `json:"images,omitempty" gorm:"type:text"`
	GroupID   *uuid.UUID `json:"group,omitempty" gorm:"type:char(36);index"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Author User   `json:"-" gorm:"foreignKey:AuthorID"`
	Group  *Group `json:"-" gorm:"foreignKey:GroupID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
