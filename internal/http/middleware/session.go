package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/sessioncookie"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

const (
	CtxKeySessionID = "session_id"
	CtxKeyIdentity  = "identity"
)

// Session gives every request a session namespace, issuing the cookie on
// first contact.
func Session(codec *sessioncookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxKeySessionID, codec.Ensure(c))
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	if v, ok := c.Get(CtxKeySessionID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// LoadIdentity resolves the logged-in shopper of the session, if any.
func LoadIdentity(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ns := SessionID(c)
		if ns != "" {
			id, ok, err := svc.Current(c.Request.Context(), ns)
			if err != nil {
				logger.Warn(c.Request.Context()).Err(err).Msg("identity_load_failed")
			} else if ok {
				c.Set(CtxKeyIdentity, id)
			}
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(CtxKeyIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
