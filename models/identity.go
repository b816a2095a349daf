package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is an anonymous, device-scoped identity. There are no usernames,
// passwords, or logout; a client obtains one identity on first load and
// reuses it across reloads via its stored token.
type Identity struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	RegisterIP string    `gorm:"size:45" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// BeforeCreate assigns the identity id and seeds LastSeenAt.
func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.LastSeenAt.IsZero() {
		i.LastSeenAt = time.Now()
	}
	return nil
}
