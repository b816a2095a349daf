package utils

import "golang.org/x/crypto/bcrypt"

// HashAdminKey returns the bcrypt hash of the operator key. Exposed for the
// deploy-time helper that generates ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAdminKey compares the configured bcrypt hash with a presented key.
func CheckAdminKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
