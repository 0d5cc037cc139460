package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher signs push bodies with HMAC-SHA256 under a shared key. Digests are
// hex encoded. Instances reuse hash states through a pool and are safe for
// concurrent use.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns nil for an empty key; a nil Hasher signs nothing and
// accepts everything.
func NewHasher(key string) *Hasher {
	if key == "" {
		return nil
	}
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, []byte(key))
			},
		},
	}
}

// Enabled reports whether h has a key.
func (h *Hasher) Enabled() bool {
	return h != nil
}

func (h *Hasher) Sum(data []byte) string {
	if h == nil {
		return ""
	}

	m := h.pool.Get().(hash.Hash)
	m.Reset()
	m.Write(data)
	sum := m.Sum(nil)
	m.Reset()
	h.pool.Put(m)

	return hex.EncodeToString(sum)
}

// Verify compares the digest of data with the hex string sum in constant
// time.
func (h *Hasher) Verify(data []byte, sum string) bool {
	if h == nil {
		return true
	}

	expected, err := hex.DecodeString(sum)
	if err != nil {
		return false
	}
	actual, _ := hex.DecodeString(h.Sum(data))
	return hmac.Equal(expected, actual)
}
