package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextOwnerID is the gin context key under which the auth middleware
// stores the authenticated owner's identity.
const ContextOwnerID = "owner_id"

// OwnerID returns the authenticated owner from the request context.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
