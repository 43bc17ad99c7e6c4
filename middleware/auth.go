package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ContextChatRoomID = "chatRoomID"

// RoomAuthorizer checks chat room tokens.
type RoomAuthorizer interface {
	Authorize(token, roomID string) bool
}

func chatToken(c *gin.Context) string {
	if t := c.Query("token"); t != "" {
		return t
	}
	if t := c.GetHeader("X-Chat-Token"); t != "" {
		return t
	}
	return bearerToken(c)
}

// ChatRoomAuth admits holders of a token for the :id room, or admins.
func ChatRoomAuth(rooms RoomAuthorizer, verifier TokenVerifier, adminAuthEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("id")
		if roomID == "" {
			roomID = c.Param("room_id")
		}
		if token := chatToken(c); token != "" && rooms.Authorize(token, roomID) {
			c.Set(ContextChatRoomID, roomID)
			c.Set(ContextIsAdmin, false)
			c.Next()
			return
		}
		if verifyAdmin(c, verifier, adminAuthEnabled) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid chat token"})
	}
}

// IsAdmin reports whether an auth middleware marked the request as an admin's.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}
