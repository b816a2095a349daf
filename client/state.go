package client

import (
	"sync"
	"time"
)

// AppState holds the presentation state that is not post data: theme,
// whether the feedback modal is open, the transient status banner, and
// whether the reader is looking at only their own posts.
type AppState struct {
	prefs *Prefs

	mu           sync.Mutex
	theme        string
	feedbackOpen bool
	status       string
	statusSeq    int
	myPostsOnly  bool
}

func NewAppState(prefs *Prefs) *AppState {
	return &AppState{prefs: prefs, theme: prefs.Theme()}
}

// Theme returns the active theme.
func (s *AppState) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips light/dark and persists the choice.
func (s *AppState) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == "dark" {
		s.theme = "light"
	} else {
		s.theme = "dark"
	}
	s.prefs.SetTheme(s.theme)
	return s.theme
}

func (s *AppState) OpenFeedbackModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbackOpen = true
}

func (s *AppState) CloseFeedbackModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbackOpen = false
}

func (s *AppState) FeedbackModalOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackOpen
}

// SetStatus shows a banner that clears itself after ttl. A newer status
// supersedes a pending clear.
func (s *AppState) SetStatus(msg string, ttl time.Duration) {
	s.mu.Lock()
	s.status = msg
	s.statusSeq++
	seq := s.statusSeq
	s.mu.Unlock()

	if ttl <= 0 {
		return
	}
	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.statusSeq == seq {
			s.status = ""
		}
	})
}

func (s *AppState) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *AppState) ClearStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = ""
	s.statusSeq++
}

// EnterMyPosts switches the feed view to only locally-authored posts.
func (s *AppState) EnterMyPosts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myPostsOnly = true
}

func (s *AppState) LeaveMyPosts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myPostsOnly = false
}

func (s *AppState) MyPostsOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myPostsOnly
}
