package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
)

type ChallengeAnswerPayload struct {
	Answer string `json:"answer"`
}

// AnswerChallenge submits the quarterly review answer and returns the
// graded challenge (or the inline failure placeholder) in the snapshot.
func (h *SessionHandler) AnswerChallenge(c *gin.Context) {
	var req ChallengeAnswerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrAnswerRequired})
		return
	}
	if err := h.mgr.AnswerChallenge(c.Request.Context(), req.Answer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// CloseChallenge leaves the review and returns to planning.
func (h *SessionHandler) CloseChallenge(c *gin.Context) {
	if err := h.mgr.CloseChallenge(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}
