package core

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewID returns an opaque entry identifier combining random bytes with a
// base-36 timestamp. IDs are unique within a document's lifetime with
// overwhelming probability; they are not meant to be globally unique.
func NewID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-only ID rather than panic.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
