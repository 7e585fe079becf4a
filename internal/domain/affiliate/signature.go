package affiliate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signer computes the SHA256 authorization header for the Shopee affiliate
// open API.
type Signer struct {
	appID  string
	secret string
	now    func() time.Time
}

// NewSigner creates a new Signer. It does not validate credential presence;
// an empty app id or secret still produces a syntactically valid header that
// the endpoint will reject. Callers check configuration before signing.
func NewSigner(appID, secret string) *Signer {
	return &Signer{
		appID:  appID,
		secret: secret,
		now:    time.Now,
	}
}

// SetClock overrides the time source (useful for testing).
func (s *Signer) SetClock(now func() time.Time) {
	s.now = now
}

// Sign computes the lowercase hex SHA-256 digest of
// app_id + timestamp + payload + secret, concatenated without separators.
// The payload must be byte-identical to the request body that will be
// transmitted; any difference invalidates the signature.
func (s *Signer) Sign(payload string, timestamp int64) string {
	factor := s.appID + strconv.FormatInt(timestamp, 10) + payload + s.secret
	sum := sha256.Sum256([]byte(factor))
	return hex.EncodeToString(sum[:])
}

// Headers builds the request headers for the given serialized payload using
// the current Unix time in whole seconds.
func (s *Signer) Headers(payload string) map[string]string {
	timestamp := s.now().Unix()
	return map[string]string{
		"Content-Type": "application/json",
		"Authorization": fmt.Sprintf("SHA256 Credential=%s, Timestamp=%d, Signature=%s",
			s.appID, timestamp, s.Sign(payload, timestamp)),
	}
}
