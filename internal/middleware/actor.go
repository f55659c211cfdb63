package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ActorHeader carries the opaque acting user/organization identity supplied
// by the calling layer. Authentication is the caller's responsibility; this
// engine only threads the identity through to audit fields and metadata.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting identity from the request header and
// stores it in the request context. Requests without an actor are rejected:
// every write must be attributable.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + ActorHeader + " header"})
			return
		}
		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actorID))
		c.Next()
	}
}
