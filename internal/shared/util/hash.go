package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashUserKey returns the object-store prefix owned by a user id. The raw id
// never appears in public file URLs.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// OwnsKey reports whether key lives under userID's prefix.
func OwnsKey(userID, key string) bool {
	if userID == "" || key == "" {
		return false
	}
	return strings.HasPrefix(key, HashUserKey(userID)+"/")
}
