package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"
)

// UserKey is the limiter key of an authenticated caller.
func UserKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// IPKey is the limiter key of an anonymous caller. RemoteAddr is expected to
// be rewritten by a real-IP middleware when running behind a proxy.
func IPKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// RetryAfterSeconds renders d as a Retry-After header value, rounded up so a
// client never retries before the window ends.
func RetryAfterSeconds(d Decision) string {
	secs := int64(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
