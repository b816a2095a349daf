package models

import "time"

// UserActivity is keyed by identity and tracks the last write of each kind.
// Fields are merged independently via upsert; setting one never clears the
// others.
type UserActivity struct {
	IdentityID    string     `gorm:"primaryKey;size:36" json:"identity_id"`
	LastPostAt    *time.Time `json:"last_post_at"`
	LastBugAt     *time.Time `json:"last_bug_at"`
	LastFeatureAt *time.Time `json:"last_feature_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
