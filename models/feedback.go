package models

import "time"

// Feedback categories.
const (
	FeedbackBug     = "bug"
	FeedbackFeature = "feature"
)

// Feedback is a bug report or feature suggestion submitted through the
// modal form. Both categories share one table with a discriminator column.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:16;index;not null" json:"category"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	AuthorID  string    `gorm:"size:36;index;not null" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidFeedbackCategory reports whether c names a known category.
func ValidFeedbackCategory(c string) bool {
	return c == FeedbackBug || c == FeedbackFeature
}
