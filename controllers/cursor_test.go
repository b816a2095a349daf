package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	in := feedCursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
		ID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
	}
	out, err := decodeCursor(encodeCursor(in))
	require.NoError(t, err)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	assert.Equal(t, in.ID, out.ID)
}

func TestCursorRejectsGarbage(t *testing.T) {
	for _, token := range []string{
		"",
		"!!!not-base64!!!",
		"aGVsbG8",         // no separator
		"fHBvc3QtaWQ",     // "|post-id", empty timestamp
		"MTIzNDV8",        // "12345|", empty id
		"YWJjfHBvc3QtaWQ", // "abc|post-id", non-numeric timestamp
	} {
		_, err := decodeCursor(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}
