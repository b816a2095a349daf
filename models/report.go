package models

import "time"

// ReportReceipt records that an identity reported a post. The composite
// unique index enforces at most one receipt per (post, reporter) pair and
// backstops the report transaction under concurrent duplicates.
type ReportReceipt struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     string    `gorm:"size:36;not null;index:idx_receipt_post_reporter,unique" json:"post_id"`
	ReporterID string    `gorm:"size:36;not null;index:idx_receipt_post_reporter,unique" json:"reporter_id"`
	CreatedAt  time.Time `json:"created_at"`
}
