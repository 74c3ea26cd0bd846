package handler

import (
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// posClient returns the POS API client bound to the caller's session. It
// writes a 401 and returns false when the request carries no session.
func posClient(c *gin.Context) (*posapi.Client, bool) {
	client := middleware.GetPOSClient(c)
	if client == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	return client, true
}

// sessionID returns the caller's session id, writing a 401 when absent.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id := middleware.GetSessionID(c)
	if id == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return id, true
}
