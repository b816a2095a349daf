package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Composer submits new posts. Checks run in a fixed order: identity first,
// then cooldown, then content. The cooldown timestamp only advances on a
// successful submission, so a rejected attempt never extends the wait.
type Composer struct {
	api   *API
	prefs *Prefs
	feed  *FeedSession

	mu   sync.Mutex
	busy bool
	now  func() time.Time
}

func NewComposer(api *API, prefs *Prefs, feed *FeedSession) *Composer {
	return &Composer{api: api, prefs: prefs, feed: feed, now: time.Now}
}

// Submit validates and posts text. On success the post is inserted at the
// head of the feed session, recorded as authored here, and the cooldown
// restarts.
func (c *Composer) Submit(ctx context.Context, text string) (Post, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return Post{}, ErrBusy
	}
	c.busy = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if c.prefs.Token() == "" {
		return Post{}, ErrNoIdentity
	}

	if last := c.prefs.LastPostAt(); !last.IsZero() {
		if remaining := postCooldown - c.now().Sub(last); remaining > 0 {
			return Post{}, &CooldownError{Remaining: remaining}
		}
	}

	content := strings.TrimSpace(text)
	if content == "" {
		return Post{}, &ValidationError{Reason: "post is empty"}
	}
	if len([]rune(content)) > maxPostChars {
		return Post{}, &ValidationError{Reason: "post is too long"}
	}

	post, err := c.api.CreatePost(ctx, content)
	if err != nil {
		return Post{}, err
	}

	c.prefs.SetLastPostAt(c.now())
	c.prefs.AddMyPost(post.ID)
	if c.feed != nil {
		c.feed.InsertLocal(post)
	}
	return post, nil
}

// CooldownRemaining returns how long until the next post is allowed. It
// never goes negative.
func (c *Composer) CooldownRemaining() time.Duration {
	last := c.prefs.LastPostAt()
	if last.IsZero() {
		return 0
	}
	remaining := postCooldown - c.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
