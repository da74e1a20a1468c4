package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ragops/assistant-gateway/pkg/utils"
)

// CookieName is the cookie carrying the signed session ID.
const CookieName = "session"

var errBadCookie = errors.New("session: invalid cookie")

// Codec signs and verifies session IDs so a client cannot forge someone
// else's session by editing the cookie. The value format is
// "<session-id>.<base64url(hmac-sha256(session-id))>".
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Encode(sessionID string) string {
	return fmt.Sprintf("%s.%s", sessionID, c.sign(sessionID))
}

func (c *Codec) Decode(value string) (string, error) {
	sessionID, signature, found := strings.Cut(value, ".")
	if !found {
		return "", errBadCookie
	}
	if !utils.ValidateSessionID(sessionID) {
		return "", errBadCookie
	}
	if !hmac.Equal([]byte(signature), []byte(c.sign(sessionID))) {
		return "", errBadCookie
	}
	return sessionID, nil
}

func (c *Codec) sign(sessionID string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
