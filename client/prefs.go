package client

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Preference keys. These survive restarts; losing the file resets cooldowns
// and local flags but never corrupts server state.
const (
	keyTheme         = "theme"
	keyIdentityToken = "identityToken"
	keyLastPost      = "lastPostTimestamp"
	keyLastBug       = "lastBugReportTimestamp"
	keyLastFeature   = "lastFeatureSuggestionTimestamp"
	keyMyPostIDs     = "myPostIds"
	keyReportedPosts = "reportedPosts"
)

// Prefs is the client's local preference store: theme, identity token,
// cooldown timestamps, and the per-device post flags. Backed by a JSON file
// via viper; every mutation is persisted immediately.
type Prefs struct {
	mu sync.Mutex
	v  *viper.Viper
}

// OpenPrefs loads (or creates) the preference file at path.
func OpenPrefs(path string) (*Prefs, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault(keyTheme, "light")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, err
		}
	}
	return &Prefs{v: v}, nil
}

func (p *Prefs) set(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v.Set(key, value)
	_ = p.v.WriteConfig()
}

// Theme returns the stored theme, defaulting to light.
func (p *Prefs) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.GetString(keyTheme)
}

func (p *Prefs) SetTheme(theme string) {
	p.set(keyTheme, theme)
}

// Token returns the stored identity token, empty when none exists.
func (p *Prefs) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.GetString(keyIdentityToken)
}

func (p *Prefs) SetToken(token string) {
	p.set(keyIdentityToken, token)
}

func (p *Prefs) lastAt(key string) time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	ms := p.v.GetInt64(key)
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// LastPostAt returns when this device last submitted a post; zero when never.
func (p *Prefs) LastPostAt() time.Time { return p.lastAt(keyLastPost) }

func (p *Prefs) SetLastPostAt(t time.Time) { p.set(keyLastPost, t.UnixMilli()) }

// LastFeedbackAt returns the last submission time for a feedback category.
func (p *Prefs) LastFeedbackAt(category string) time.Time {
	if category == "bug" {
		return p.lastAt(keyLastBug)
	}
	return p.lastAt(keyLastFeature)
}

func (p *Prefs) SetLastFeedbackAt(category string, t time.Time) {
	if category == "bug" {
		p.set(keyLastBug, t.UnixMilli())
	} else {
		p.set(keyLastFeature, t.UnixMilli())
	}
}

// MyPostIDs returns the ids of posts authored on this device.
func (p *Prefs) MyPostIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.GetStringSlice(keyMyPostIDs)
}

// AddMyPost records a post id as authored here.
func (p *Prefs) AddMyPost(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := append(p.v.GetStringSlice(keyMyPostIDs), id)
	p.v.Set(keyMyPostIDs, dedupe(ids))
	_ = p.v.WriteConfig()
}

// IsMine reports whether a post was authored on this device.
func (p *Prefs) IsMine(id string) bool {
	return contains(p.MyPostIDs(), id)
}

// ReportedPosts returns the ids this device has reported.
func (p *Prefs) ReportedPosts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.GetStringSlice(keyReportedPosts)
}

// MarkReported flags a post as reported locally. The flag is permanent for
// this device regardless of what the server later says.
func (p *Prefs) MarkReported(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := append(p.v.GetStringSlice(keyReportedPosts), id)
	p.v.Set(keyReportedPosts, dedupe(ids))
	_ = p.v.WriteConfig()
}

// IsReported reports whether this device already reported the post.
func (p *Prefs) IsReported(id string) bool {
	return contains(p.ReportedPosts(), id)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
