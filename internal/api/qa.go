package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
)

type QuestionPayload struct {
	Question string `json:"question"`
}

// AskQuestion submits a free-text question to the client. The exchange is
// returned immediately with a pending answer; the presentation polls state
// until the answer arrives.
func (h *SessionHandler) AskQuestion(c *gin.Context) {
	var req QuestionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrQuestionRequired})
		return
	}
	qa, err := h.mgr.AskQuestion(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"qa": qa})
}
