package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/sync/singleflight"
)

// submissionGuard collapses identical submissions that arrive while an
// earlier one is still being written. Once the first call returns, the next
// identical submission runs again.
type submissionGuard struct {
	group singleflight.Group
}

// do runs fn once for all concurrent callers sharing the same scope and payload.
func (g *submissionGuard) do(scope string, payload any, fn func() (any, error)) (any, error, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err, false
	}
	sum := sha256.Sum256(raw)
	return g.group.Do(scope+":"+hex.EncodeToString(sum[:]), fn)
}
