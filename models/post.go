package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board-wide limits. The hide threshold and page size mirror what the feed
// applies client-side; the server stores raw counts and serves raw pages.
const (
	MaxPostChars     = 1200
	FeedPageSize     = 15
	HideThreshold    = 5
	PostCooldown     = 300 * time.Second
	FeedbackCooldown = 180 * time.Second
	MinFeedbackChars = 10
)

// Post is the private copy of a submission. It carries the author identity
// so a full audit trail exists server-side while the public surface stays
// anonymous. A Post and its PublicPost share the same ID and are created in
// one transaction; content and creation time never diverge.
type Post struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    string    `gorm:"index;size:36;not null" json:"author_id"`
	ReportCount int       `gorm:"not null;default:0" json:"report_count"`
	Immune      bool      `gorm:"not null;default:false" json:"immune"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// PublicPost is the author-stripped mirror served to the feed.
type PublicPost struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ReportCount int       `gorm:"not null;default:0" json:"report_count"`
	Immune      bool      `gorm:"not null;default:false" json:"immune"`
	CreatedAt   time.Time `gorm:"index:idx_public_posts_feed,priority:1" json:"created_at"`
}

// Visible reports whether the post survives the hide filter.
func (p *PublicPost) Visible() bool {
	return p.ReportCount < HideThreshold || p.Immune
}

// BeforeCreate assigns the shared identifier when the caller did not.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
