package thread

import (
	"crypto/sha1"
	"encoding/hex"
)

// ID derives the thread identifier from the subject and the first and last
// timestamps of a sorted thread. Threads sharing all three collide; the id is
// a dedup key, not a content hash.
func ID(t Thread) string {
	var first, last string
	if msg, ok := t.First(); ok {
		first = msg.Timestamp
	}
	if msg, ok := t.Last(); ok {
		last = msg.Timestamp
	}
	sum := sha1.Sum([]byte(t.Subject + first + last))
	return hex.EncodeToString(sum[:])
}
