package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/game"
)

// AcceptBrief moves from the brief presentation into monthly planning.
func (h *SessionHandler) AcceptBrief(c *gin.Context) {
	if err := h.mgr.AcceptBrief(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// RegenerateBrief swaps the current client scenario for a fresh one.
func (h *SessionHandler) RegenerateBrief(c *gin.Context) {
	if err := h.mgr.RegenerateBrief(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

type AllocationPayload struct {
	Allocation map[game.Channel]float64 `json:"allocation"`
}

// SetAllocation replaces the current month's channel plan.
func (h *SessionHandler) SetAllocation(c *gin.Context) {
	var req AllocationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.mgr.SetAllocation(req.Allocation); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// Run executes the month. The response arrives after the pacing delay,
// carrying the RESULT view; meanwhile GET /state reports RUNNING.
func (h *SessionHandler) Run(c *gin.Context) {
	if err := h.mgr.Run(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// NextMonth advances the calendar, either back to planning or into the
// quarterly client review.
func (h *SessionHandler) NextMonth(c *gin.Context) {
	if err := h.mgr.NextMonth(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}
