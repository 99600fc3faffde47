package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookie = "cart_session"

// SessionMiddleware assigns each storefront visitor a session cookie so
// their cart and filter selection survive across requests. The cookie
// lives for 30 days, matching the cart snapshot TTL.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, 60*60*24*30, "/", "", false, true)
		}
		c.Set("session_id", sessionID)
		c.Next()
	}
}

// SessionID returns the session assigned by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
