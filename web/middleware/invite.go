package middleware

import (
	"net/http"

	"quizbank/web/session"

	"github.com/gin-gonic/gin"
)

// InviteMarkerCookie is the durable marker issued after a successful invite
// code submission. Its presence is treated as a cache of a past gate pass;
// it is not re-checked against the current invite code.
const InviteMarkerCookie = "invited_ok"

// InviteRequired is the first gate of the chain. Callers holding neither
// the durable marker nor the session invite flag are sent back to the gate
// entry before any identity-specific route is reachable.
func InviteRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if marker, err := c.Cookie(InviteMarkerCookie); err == nil && marker != "" {
			c.Next()
			return
		}
		if session.IsInvited(c) {
			c.Next()
			return
		}
		if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invite code required"})
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"gate")
		}
		c.Abort()
	}
}
