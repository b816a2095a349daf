package client

import "time"

// Board limits, mirrored from the service. The service enforces length and
// uniqueness; cooldowns are purely client-side and deliberately stay here.
const (
	pageSize         = 15
	hideThreshold    = 5
	maxPostChars     = 1200
	postCooldown     = 5 * time.Minute
	feedbackCooldown = 3 * time.Minute
	minFeedbackChars = 10
)

// Feedback categories accepted by the service.
const (
	FeedbackBug     = "bug"
	FeedbackFeature = "feature"
)
