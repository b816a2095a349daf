package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// boardStub is a minimal in-memory rendition of the board's HTTP surface.
// Cursors are plain offsets here; the client treats them as opaque either
// way.
type boardStub struct {
	mu            sync.Mutex
	posts         []Post // newest first
	identitySeq   int
	feedCalls     int
	createCalls   int
	reportCalls   int
	feedbackCalls int
	lastAuth      string

	failReports  bool
	feedBlocked  chan struct{} // when set, feed handlers wait on it
	server       *httptest.Server
}

func newBoardStub() *boardStub {
	b := &boardStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/anonymous", b.handleIdentity)
	mux.HandleFunc("/api/v1/feed", b.handleFeed)
	mux.HandleFunc("/api/v1/posts", b.handleCreate)
	mux.HandleFunc("/api/v1/posts/", b.handlePostSub)
	mux.HandleFunc("/api/v1/feedback", b.handleFeedback)
	b.server = httptest.NewServer(mux)
	return b
}

func (b *boardStub) close()      { b.server.Close() }
func (b *boardStub) url() string { return b.server.URL }

// seed fills the stub with n posts, newest first.
func (b *boardStub) seed(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	base := time.Now()
	for i := n - 1; i >= 0; i-- {
		b.posts = append(b.posts, Post{
			ID:        fmt.Sprintf("post-%d", i),
			Content:   fmt.Sprintf("post number %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
}

func writeEnvelope(w http.ResponseWriter, status, code int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code": code, "message": msg, "data": data,
	})
}

func (b *boardStub) handleIdentity(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.identitySeq++
	seq := b.identitySeq
	b.mu.Unlock()
	writeEnvelope(w, http.StatusOK, 0, "success", IdentityGrant{
		IdentityID: fmt.Sprintf("identity-%d", seq),
		Token:      fmt.Sprintf("token-%d", seq),
		CreatedAt:  time.Now(),
	})
}

func (b *boardStub) handleFeed(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.feedCalls++
	blocked := b.feedBlocked
	b.mu.Unlock()
	if blocked != nil {
		<-blocked
	}

	offset := 0
	if cur := r.URL.Query().Get("cursor"); cur != "" {
		offset, _ = strconv.Atoi(cur)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	end := offset + pageSize
	if end > len(b.posts) {
		end = len(b.posts)
	}
	page := FeedPage{Items: []Post{}}
	if offset < len(b.posts) {
		page.Items = b.posts[offset:end]
		page.NextCursor = strconv.Itoa(end)
	}
	writeEnvelope(w, http.StatusOK, 0, "success", page)
}

func (b *boardStub) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		writeEnvelope(w, http.StatusUnauthorized, 40101, "authorization header missing", nil)
		return
	}

	b.mu.Lock()
	b.createCalls++
	b.lastAuth = r.Header.Get("Authorization")
	b.mu.Unlock()

	var body struct {
		Content string `json:"content"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	post := Post{
		ID:        fmt.Sprintf("created-%d", b.createCalls),
		Content:   body.Content,
		CreatedAt: time.Now(),
	}
	b.mu.Lock()
	b.posts = append([]Post{post}, b.posts...)
	b.mu.Unlock()
	writeEnvelope(w, http.StatusOK, 0, "success", post)
}

func (b *boardStub) handlePostSub(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/report") {
		writeEnvelope(w, http.StatusNotFound, 40400, "route not found", nil)
		return
	}
	postID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/posts/"), "/report")
	if postID == "missing" {
		writeEnvelope(w, http.StatusNotFound, 40401, "post not found", nil)
		return
	}
	b.mu.Lock()
	b.reportCalls++
	fail := b.failReports
	b.mu.Unlock()
	if fail {
		writeEnvelope(w, http.StatusInternalServerError, 50024, "report failed", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, 0, "success", ReportResult{ReportCount: 1})
}

func (b *boardStub) handleFeedback(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.feedbackCalls++
	b.mu.Unlock()
	writeEnvelope(w, http.StatusOK, 0, "success", nil)
}
