package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ragops/assistant-gateway/pkg/utils"
	"github.com/sirupsen/logrus"
)

// KeyConversationID is the one session key the gateway cares about.
const KeyConversationID = "conversation_id"

const contextKey = "gateway_session"

// Session is the per-request handle handlers use to read and write the
// caller's state.
type Session struct {
	ID    string
	store Store
}

func (s *Session) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.ID, key)
}

func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.ID, key, value)
}

func (s *Session) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.ID, key)
}

// Middleware decodes the session cookie, minting a fresh session when the
// cookie is absent, tampered with, or malformed, and re-issues the cookie on
// every response so new sessions reach the client.
func Middleware(store Store, codec *Codec, ttl time.Duration, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if raw, err := c.Cookie(CookieName); err == nil {
			sessionID, err = codec.Decode(raw)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"ip_address": c.ClientIP(),
				}).Debug("Rejected invalid session cookie")
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = utils.NewSessionID()
		}

		c.Set(contextKey, &Session{ID: sessionID, store: store})

		maxAge := int(ttl / time.Second)
		c.SetCookie(CookieName, codec.Encode(sessionID), maxAge, "/", "", false, true)

		c.Next()
	}
}

// FromContext returns the request's session. It panics if Middleware did not
// run, which is a wiring bug, not a runtime condition.
func FromContext(c *gin.Context) *Session {
	return c.MustGet(contextKey).(*Session)
}
