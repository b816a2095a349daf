package client

import "context"

// Reporter flags posts. The local mark is the source of truth for this
// device: it is written before the network call and kept even when the call
// fails, so the reader sees an immediate, stable "reported" state. The
// server's per-identity uniqueness makes retries and duplicates harmless.
type Reporter struct {
	api   *API
	prefs *Prefs
	feed  *FeedSession
}

func NewReporter(api *API, prefs *Prefs, feed *FeedSession) *Reporter {
	return &Reporter{api: api, prefs: prefs, feed: feed}
}

// Report flags a post. Reporting the same post twice is a no-op. The server
// call is fire-and-forget: its failure is reported back but changes nothing
// locally.
func (r *Reporter) Report(ctx context.Context, postID string) error {
	if r.prefs.IsReported(postID) {
		return nil
	}

	r.prefs.MarkReported(postID)
	if r.feed != nil {
		r.feed.BumpReportCount(postID)
	}

	if _, err := r.api.Report(ctx, postID); err != nil {
		return err
	}
	return nil
}
