package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestComposerSubmit(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()

	prefs := testPrefs(t)
	prefs.SetToken("token-1")
	api := NewAPI(stub.url())
	api.SetToken("token-1")
	feed := NewFeedSession(api, prefs)
	composer := NewComposer(api, prefs, feed)
	clock := &fakeClock{now: time.Now()}
	composer.now = clock.Now

	post, err := composer.Submit(context.Background(), "  first shout into the void  ")
	require.NoError(t, err)
	assert.Equal(t, "first shout into the void", post.Content, "content is trimmed before submit")

	// Local effects: head insert, authorship mark, cooldown start.
	posts := feed.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.True(t, prefs.IsMine(post.ID))
	assert.Equal(t, clock.now.UnixMilli(), prefs.LastPostAt().UnixMilli())
}

func TestComposerCooldown(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()

	prefs := testPrefs(t)
	prefs.SetToken("token-1")
	api := NewAPI(stub.url())
	api.SetToken("token-1")
	composer := NewComposer(api, prefs, nil)
	clock := &fakeClock{now: time.Now()}
	composer.now = clock.Now

	_, err := composer.Submit(context.Background(), "the first one goes through")
	require.NoError(t, err)

	clock.advance(time.Minute)
	_, err = composer.Submit(context.Background(), "too soon")
	var cdErr *CooldownError
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, 4*time.Minute, cdErr.Remaining)
	assert.Equal(t, 1, stub.createCalls, "cooled-down submit must not reach the network")

	// A rejected attempt does not extend the wait.
	assert.Equal(t, 4*time.Minute, composer.CooldownRemaining())

	clock.advance(4 * time.Minute)
	assert.Zero(t, composer.CooldownRemaining())
	_, err = composer.Submit(context.Background(), "cooldown has elapsed")
	require.NoError(t, err)

	// Remaining never goes negative, even long after expiry.
	clock.advance(24 * time.Hour)
	assert.Zero(t, composer.CooldownRemaining())
}

func TestComposerValidation(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()

	prefs := testPrefs(t)
	api := NewAPI(stub.url())
	api.SetToken("token-1")
	composer := NewComposer(api, prefs, nil)

	_, err := composer.Submit(context.Background(), "no identity yet")
	assert.ErrorIs(t, err, ErrNoIdentity)

	prefs.SetToken("token-1")

	_, err = composer.Submit(context.Background(), "   \n\t  ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = composer.Submit(context.Background(), strings.Repeat("x", maxPostChars+1))
	require.ErrorAs(t, err, &vErr)

	// Exactly at the limit is fine.
	_, err = composer.Submit(context.Background(), strings.Repeat("x", maxPostChars))
	require.NoError(t, err)

	assert.Equal(t, 1, stub.createCalls, "rejected input must not reach the network")
}

func TestReporterLocalFlagIsAuthoritative(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()
	stub.posts = []Post{{ID: "p1", Content: "rude"}}
	stub.failReports = true

	prefs := testPrefs(t)
	prefs.SetToken("token-1")
	api := NewAPI(stub.url())
	feed := NewFeedSession(api, prefs)
	_, err := feed.LoadMore(context.Background())
	require.NoError(t, err)

	reporter := NewReporter(api, prefs, feed)

	// The server fails, but the local mark and the optimistic bump stick.
	err = reporter.Report(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, prefs.IsReported("p1"))
	assert.Equal(t, 1, feed.Posts()[0].ReportCount)

	// Second report of the same post is a local no-op.
	require.NoError(t, reporter.Report(context.Background(), "p1"))
	assert.Equal(t, 1, stub.reportCalls)
	assert.Equal(t, 1, feed.Posts()[0].ReportCount, "no double bump")
}

func TestFeedbackFormCooldownPerCategory(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()

	prefs := testPrefs(t)
	prefs.SetToken("token-1")
	form := NewFeedbackForm(NewAPI(stub.url()), prefs)
	clock := &fakeClock{now: time.Now()}
	form.now = clock.Now

	require.NoError(t, form.Submit(context.Background(), FeedbackBug, "the feed jumps around while loading"))

	err := form.Submit(context.Background(), FeedbackBug, "another bug right away")
	var cdErr *CooldownError
	require.ErrorAs(t, err, &cdErr)

	// The bug cooldown does not block a feature suggestion.
	require.NoError(t, form.Submit(context.Background(), FeedbackFeature, "let me pin a post locally"))

	clock.advance(feedbackCooldown)
	require.NoError(t, form.Submit(context.Background(), FeedbackBug, "bug cooldown has elapsed now"))
	assert.Equal(t, 3, stub.feedbackCalls)
}

func TestFeedbackFormValidation(t *testing.T) {
	stub := newBoardStub()
	defer stub.close()

	prefs := testPrefs(t)
	prefs.SetToken("token-1")
	form := NewFeedbackForm(NewAPI(stub.url()), prefs)

	var vErr *ValidationError
	require.True(t, errors.As(form.Submit(context.Background(), "complaint", "not a real category"), &vErr))
	require.True(t, errors.As(form.Submit(context.Background(), FeedbackBug, "fix"), &vErr))
	require.True(t, errors.As(form.Submit(context.Background(), FeedbackBug, "         fix        "), &vErr),
		"padding does not rescue a short message")
	assert.Zero(t, stub.feedbackCalls)

	require.NoError(t, form.Submit(context.Background(), FeedbackBug, "ten chars!"))
	assert.Equal(t, 1, stub.feedbackCalls)
}
