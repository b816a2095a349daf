package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FeedbackForm submits bug reports and feature suggestions. Each category
// carries its own cooldown; submitting a bug never delays a feature
// suggestion.
type FeedbackForm struct {
	api   *API
	prefs *Prefs

	mu   sync.Mutex
	busy bool
	now  func() time.Time
}

func NewFeedbackForm(api *API, prefs *Prefs) *FeedbackForm {
	return &FeedbackForm{api: api, prefs: prefs, now: time.Now}
}

// Submit validates and sends one feedback item. The category cooldown only
// restarts after the service accepts the submission.
func (f *FeedbackForm) Submit(ctx context.Context, category, message string) error {
	if category != FeedbackBug && category != FeedbackFeature {
		return &ValidationError{Reason: "unknown feedback category"}
	}

	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	f.busy = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	if f.prefs.Token() == "" {
		return ErrNoIdentity
	}

	if last := f.prefs.LastFeedbackAt(category); !last.IsZero() {
		if remaining := feedbackCooldown - f.now().Sub(last); remaining > 0 {
			return &CooldownError{Remaining: remaining}
		}
	}

	trimmed := strings.TrimSpace(message)
	if len([]rune(trimmed)) < minFeedbackChars {
		return &ValidationError{Reason: "feedback message too short"}
	}

	if err := f.api.SubmitFeedback(ctx, category, trimmed); err != nil {
		return err
	}

	f.prefs.SetLastFeedbackAt(category, f.now())
	return nil
}

// CooldownRemaining returns the wait left for one category, never negative.
func (f *FeedbackForm) CooldownRemaining(category string) time.Duration {
	last := f.prefs.LastFeedbackAt(category)
	if last.IsZero() {
		return 0
	}
	remaining := feedbackCooldown - f.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
