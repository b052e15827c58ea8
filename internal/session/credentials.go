package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

// Bootstrap restores a previously saved credential at startup. With a key
// present the session skips AWAITING_CREDENTIALS and generates the first
// brief immediately; without one it stays on the credential gate.
func (m *Manager) Bootstrap(ctx context.Context) error {
	key, err := m.repo.LoadCredential()
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if key == "" {
		return nil
	}
	return m.startWithKey(ctx, key, false)
}

// SubmitCredentials is the AWAITING_CREDENTIALS exit: it validates the key
// by generating the first brief with it and persists it only on success.
func (m *Manager) SubmitCredentials(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrCredentialMissing
	}
	return m.startWithKey(ctx, key, true)
}

func (m *Manager) startWithKey(ctx context.Context, key string, persist bool) error {
	m.mu.Lock()
	if m.s.View == game.ViewLoading {
		m.mu.Unlock()
		return ErrDuplicateSubmission
	}
	if m.s.View != game.ViewAwaitingCredentials {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	provider := m.newProvider(key)
	token := m.beginLoading()
	m.mu.Unlock()

	brief, err := m.generateBrief(ctx, provider)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stillLoading(token) {
		logging.Warn("stale brief generation discarded", logging.Fields{constants.LogFieldView: string(m.s.View)})
		return ErrStaleOperation
	}
	if err != nil {
		m.setView(game.ViewAwaitingCredentials)
		logging.Error("brief generation failed", err, nil)
		return fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	if persist {
		if err := m.repo.SaveCredential(key); err != nil {
			// The key worked; losing persistence only costs a re-entry on
			// the next startup.
			logging.Error("failed to persist credential", err, nil)
		}
	}

	m.provider = provider
	m.s.ResetForBrief(brief, uuid.NewString(), false)
	m.setView(game.ViewBrief)
	logging.Info("session started", logging.Fields{constants.LogFieldClient: brief.ClientName})
	return nil
}

// ClearCredentials is the escape transition: from any view back to
// AWAITING_CREDENTIALS, discarding the brief, history, QA log and
// challenge. The finished run is archived first.
func (m *Manager) ClearCredentials() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.ClearCredential(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	m.archiveCurrentRun()
	m.provider = nil
	m.loadingToken = ""
	m.s = game.NewSession()
	logging.Info("credentials cleared", nil)
	return nil
}

// generateBrief runs the provider call outside the lock, deduplicated per
// operation class.
func (m *Manager) generateBrief(ctx context.Context, provider Provider) (*game.Brief, error) {
	v, err, _ := m.briefGroup.Do("brief", func() (interface{}, error) {
		return provider.GenerateBrief(ctx)
	})
	if err != nil {
		return nil, err
	}
	brief, ok := v.(*game.Brief)
	if !ok || brief == nil {
		return nil, fmt.Errorf("unexpected brief generation result")
	}
	return brief, nil
}
