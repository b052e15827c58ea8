package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/game"
)

type ModalPayload struct {
	Modal game.Modal `json:"modal"`
}

// SetModal opens an overlay (history, brief detail or channel info).
func (h *SessionHandler) SetModal(c *gin.Context) {
	var req ModalPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.mgr.SetModal(req.Modal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// ClearModal closes the open overlay, if any.
func (h *SessionHandler) ClearModal(c *gin.Context) {
	h.mgr.ClearModal()
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}
