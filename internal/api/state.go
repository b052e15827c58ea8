package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
)

// GetState returns the full session snapshot the presentation renders from.
func (h *SessionHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyState: h.mgr.Snapshot()})
}

// GetHistory returns the per-game month history, oldest first.
func (h *SessionHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.mgr.History()})
}

// GetArchive lists summaries of previously finished runs, newest first.
func (h *SessionHandler) GetArchive(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := h.repo.ListArchive(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchArchive})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archive": rows})
}
