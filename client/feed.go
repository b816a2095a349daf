package client

import (
	"context"
	"sync"
)

// FeedSession is one scrolling session over the public feed. It tracks the
// continuation cursor, a one-shot end-of-stream flag, and the posts accepted
// so far. Pages arrive raw from the service; the hide filter is applied here,
// at acceptance time, so a post that later crosses the threshold locally is
// never pulled back out from under the reader.
type FeedSession struct {
	api   *API
	prefs *Prefs

	mu     sync.Mutex
	busy   bool
	done   bool
	cursor string
	posts  []Post
}

func NewFeedSession(api *API, prefs *Prefs) *FeedSession {
	return &FeedSession{api: api, prefs: prefs}
}

// LoadMore fetches and accepts the next page. It returns the number of posts
// accepted. Concurrent calls beyond the first return ErrBusy; calls after
// the stream has ended are silent no-ops.
func (f *FeedSession) LoadMore(ctx context.Context) (int, error) {
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()
		return 0, nil
	}
	if f.busy {
		f.mu.Unlock()
		return 0, ErrBusy
	}
	f.busy = true
	cursor := f.cursor
	f.mu.Unlock()

	page, err := f.api.FeedPage(ctx, cursor)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		return 0, err
	}

	accepted := 0
	for _, p := range page.Items {
		if p.ReportCount >= hideThreshold && !p.Immune {
			continue
		}
		f.posts = append(f.posts, p)
		accepted++
	}
	f.cursor = page.NextCursor
	// A short page means the stream is exhausted. The flag is one-shot:
	// posts created after this point belong to a fresh session.
	if len(page.Items) < pageSize {
		f.done = true
	}
	return accepted, nil
}

// Done reports whether the stream has ended.
func (f *FeedSession) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Posts returns a copy of the accepted posts, newest first.
func (f *FeedSession) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// MyPosts returns only the posts authored on this device.
func (f *FeedSession) MyPosts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Post, 0)
	for _, p := range f.posts {
		if f.prefs.IsMine(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// InsertLocal places a just-created post at the head of the session without
// a refetch.
func (f *FeedSession) InsertLocal(p Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]Post{p}, f.posts...)
}

// BumpReportCount optimistically increments a displayed post's count. The
// post stays visible whatever the new count is.
func (f *FeedSession) BumpReportCount(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].ReportCount++
			return
		}
	}
}
