package session

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	threadPrefix   = "thread_"
	suffixLen      = 7
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// now is swapped in tests.
var now = time.Now

// MintThreadID returns a new thread id of the form thread_<unix-ms>_<suffix>.
func MintThreadID() string {
	var b strings.Builder
	b.WriteString(threadPrefix)
	b.WriteString(strconv.FormatInt(now().UnixMilli(), 10))
	b.WriteByte('_')
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < suffixLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			n = big.NewInt(int64(time.Now().UnixNano() % 36))
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String()
}

// IsClientThreadID reports whether id looks like one minted by MintThreadID.
// Server-assigned ids may have any shape; this is only used for display hints.
func IsClientThreadID(id string) bool {
	rest, ok := strings.CutPrefix(id, threadPrefix)
	if !ok {
		return false
	}
	ms, suffix, ok := strings.Cut(rest, "_")
	if !ok || len(suffix) != suffixLen {
		return false
	}
	if _, err := strconv.ParseInt(ms, 10, 64); err != nil {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune(base36Alphabet, r) {
			return false
		}
	}
	return true
}
