package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
)

// Post is the public feed item as served by the board.
type Post struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ReportCount int       `json:"report_count"`
	Immune      bool      `json:"immune"`
	CreatedAt   time.Time `json:"created_at"`
}

// IdentityGrant is the result of establishing an anonymous identity.
type IdentityGrant struct {
	IdentityID string    `json:"identity_id"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedPage is one raw page of posts plus the continuation cursor.
type FeedPage struct {
	Items      []Post `json:"items"`
	NextCursor string `json:"next_cursor"`
}

// ReportResult is the service's acknowledgement of a report.
type ReportResult struct {
	AlreadyReported bool `json:"already_reported"`
	ReportCount     int  `json:"report_count"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// API is a thin typed wrapper over the board's HTTP surface.
type API struct {
	http *resty.Client
}

// NewAPI builds a client for the board at baseURL.
func NewAPI(baseURL string) *API {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", "soapbox-client/1.0")
	return &API{http: c}
}

// SetToken installs the identity token on all subsequent requests.
func (a *API) SetToken(token string) {
	a.http.SetAuthToken(token)
}

func (a *API) call(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return err
	}
	var env envelope
	if jerr := json.Unmarshal(resp.Body(), &env); jerr != nil {
		return &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
	}
	if !resp.IsSuccess() || env.Code != 0 {
		return &APIError{StatusCode: resp.StatusCode(), Code: env.Code, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// EstablishIdentity mints a new anonymous identity and installs its token.
func (a *API) EstablishIdentity(ctx context.Context) (IdentityGrant, error) {
	var grant IdentityGrant
	resp, err := a.http.R().SetContext(ctx).Post("/api/v1/auth/anonymous")
	if err := a.call(resp, err, &grant); err != nil {
		return IdentityGrant{}, err
	}
	a.SetToken(grant.Token)
	return grant, nil
}

// FeedPage fetches one raw page. An empty cursor requests the newest page.
func (a *API) FeedPage(ctx context.Context, cursor string) (FeedPage, error) {
	req := a.http.R().SetContext(ctx)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}
	var page FeedPage
	resp, err := req.Get("/api/v1/feed")
	if err := a.call(resp, err, &page); err != nil {
		return FeedPage{}, err
	}
	return page, nil
}

// CreatePost submits content and returns the stored public post.
func (a *API) CreatePost(ctx context.Context, content string) (Post, error) {
	var post Post
	resp, err := a.http.R().SetContext(ctx).
		SetBody(map[string]string{"content": content}).
		Post("/api/v1/posts")
	if err := a.call(resp, err, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// Report flags a post for the caller's identity.
func (a *API) Report(ctx context.Context, postID string) (ReportResult, error) {
	var result ReportResult
	resp, err := a.http.R().SetContext(ctx).Post("/api/v1/posts/" + postID + "/report")
	if err := a.call(resp, err, &result); err != nil {
		return ReportResult{}, err
	}
	return result, nil
}

// SubmitFeedback sends a bug report or feature suggestion.
func (a *API) SubmitFeedback(ctx context.Context, category, message string) error {
	resp, err := a.http.R().SetContext(ctx).
		SetBody(map[string]string{"category": category, "message": message}).
		Post("/api/v1/feedback")
	return a.call(resp, err, nil)
}
