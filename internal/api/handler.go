package api

import (
	"github.com/yuuto7838/adsim/internal/session"
	"github.com/yuuto7838/adsim/internal/storage"
)

// SessionHandler groups all HTTP handlers. Handlers validate request shape
// only; every game rule lives in the session manager.
type SessionHandler struct {
	mgr  *session.Manager
	repo storage.Repository
}

// NewSessionHandler creates a handler bound to the session manager and the
// archive repository.
func NewSessionHandler(mgr *session.Manager, repo storage.Repository) *SessionHandler {
	return &SessionHandler{mgr: mgr, repo: repo}
}
