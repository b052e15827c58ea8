package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/session"
)

// respondError maps session sentinel errors to HTTP status codes and the
// centralized user-facing messages.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrCredentialMissing):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCredentialRequired})
	case errors.Is(err, session.ErrInvalidAllocation):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAllocation})
	case errors.Is(err, session.ErrBudgetExceeded):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBudgetExceeded})
	case errors.Is(err, session.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrDuplicateSubmission})
	case errors.Is(err, session.ErrChallengeNotScored):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChallengeNotScored})
	case errors.Is(err, session.ErrModalNotAllowed):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrModalNotAllowed})
	case errors.Is(err, session.ErrInvalidTransition), errors.Is(err, session.ErrStaleOperation):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInvalidTransition})
	case errors.Is(err, session.ErrProviderFailure):
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrProviderFailed})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
	}
}
