package session

import "github.com/yuuto7838/adsim/internal/game"

// SetModal opens an overlay on top of the current view. Overlays are only
// available during PLANNING, RUNNING and RESULT.
func (m *Manager) SetModal(modal game.Modal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !game.ValidModal(modal) {
		return ErrModalNotAllowed
	}
	if !game.ModalAllowed(m.s.View) {
		return ErrModalNotAllowed
	}
	m.s.Modal = modal
	return nil
}

// ClearModal closes any open overlay. Closing with none open is a no-op.
func (m *Manager) ClearModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.Modal = game.ModalNone
}
