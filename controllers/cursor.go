package controllers

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// feedCursor marks the last raw document of a served page. Pagination is
// keyset-based: strictly older than (created_at, id) in descending order.
type feedCursor struct {
	CreatedAt time.Time
	ID        string
}

var errBadCursor = errors.New("malformed cursor")

// encodeCursor renders an opaque token the client passes back verbatim.
func encodeCursor(c feedCursor) string {
	raw := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(token string) (feedCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return feedCursor{}, errBadCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return feedCursor{}, errBadCursor
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return feedCursor{}, errBadCursor
	}
	return feedCursor{CreatedAt: time.Unix(0, nanos), ID: parts[1]}, nil
}
