package privacy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Pseudonymizer derives stable, non-reversible tokens from raw addresses.
// The key is fixed for the lifetime of the process; rotating it breaks
// cross-session correlation, so it is read once from config at startup.
type Pseudonymizer struct {
	key []byte
}

func NewPseudonymizer(secret string) *Pseudonymizer {
	return &Pseudonymizer{key: []byte(secret)}
}

// Pseudonym returns hex(HMAC-SHA256(key, addr)). Deterministic: the same
// address and key always produce the same token, across restarts.
func (p *Pseudonymizer) Pseudonym(addr string) string {
	mac := hmac.New(sha256.New, p.key)
	mac.Write([]byte(addr))
	return hex.EncodeToString(mac.Sum(nil))
}
