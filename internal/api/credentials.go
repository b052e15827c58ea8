package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
)

type CredentialsPayload struct {
	APIKey string `json:"api_key"`
}

// SubmitCredentials validates the submitted Gemini key by generating the
// first brief with it. On success the key is persisted and the session
// shows the brief; on failure the credential gate stays up.
func (h *SessionHandler) SubmitCredentials(c *gin.Context) {
	var req CredentialsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCredentialRequired})
		return
	}
	if err := h.mgr.SubmitCredentials(c.Request.Context(), req.APIKey); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// ClearCredentials discards the stored key and all session data, returning
// to the credential gate.
func (h *SessionHandler) ClearCredentials(c *gin.Context) {
	if err := h.mgr.ClearCredentials(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}
