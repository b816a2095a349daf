package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soapboxd/soapbox/config"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "utils-test-secret")
	os.Setenv("CACHE_ENABLED", "false")
	config.Reset()
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("some-identity-id", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "some-identity-id", claims.IdentityID)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("some-identity-id", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken("definitely.not.a-jwt")
	assert.Error(t, err)
}

func TestAdminKeyHashRoundTrip(t *testing.T) {
	hash, err := HashAdminKey("operator-key")
	require.NoError(t, err)

	assert.True(t, CheckAdminKey(hash, "operator-key"))
	assert.False(t, CheckAdminKey(hash, "wrong-key"))
	assert.False(t, CheckAdminKey("", "operator-key"))
}
