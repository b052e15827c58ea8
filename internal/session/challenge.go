package session

import (
	"context"
	"strings"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/engine"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

// AnswerChallenge submits the player's answer to the quarterly review and
// applies the evaluator's grading. A challenge is answered at most once;
// repeats are rejected as duplicates.
func (m *Manager) AnswerChallenge(ctx context.Context, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	if m.s.View != game.ViewChallenge || m.s.Challenge == nil {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	ch := m.s.Challenge
	if ch.Answer != "" || ch.Scored() {
		m.mu.Unlock()
		return ErrDuplicateSubmission
	}
	ch.Answer = answer

	provider := m.provider
	brief := m.s.Brief
	latest := m.s.LastResult
	chID := ch.ID
	question := ch.Question
	m.mu.Unlock()

	res, err := m.scoreChallenge(ctx, provider, brief, question, answer, latest, chID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Challenge == nil || m.s.Challenge.ID != chID {
		logging.Warn("stale challenge score discarded", logging.Fields{constants.LogFieldChallenge: chID})
		return ErrStaleOperation
	}
	if err != nil {
		// Inline placeholder: mark the challenge scored with no bonus so
		// the player is not trapped in the review.
		logging.Error("challenge scoring failed", err, logging.Fields{constants.LogFieldChallenge: chID})
		m.s.Challenge.Feedback = constants.ChallengeFeedbackFailed
		return nil
	}

	if err := engine.ApplyScoreResult(m.s.Challenge, m.s.Brief, res); err != nil {
		return ErrDuplicateSubmission
	}
	logging.Info("challenge graded", logging.Fields{
		constants.LogFieldChallenge: chID,
		constants.LogFieldScore:     res.Score,
		constants.LogFieldBonus:     res.BudgetBonus,
	})
	return nil
}

// CloseChallenge is the CHALLENGE → PLANNING transition, legal only after
// the review was graded.
func (m *Manager) CloseChallenge() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.View != game.ViewChallenge {
		return ErrInvalidTransition
	}
	if !m.s.Challenge.Scored() {
		return ErrChallengeNotScored
	}
	m.setView(game.ViewPlanning)
	return nil
}

func (m *Manager) scoreChallenge(ctx context.Context, provider Provider, brief *game.Brief, question, answer string, latest *game.MonthResult, chID string) (game.ScoreResult, error) {
	v, err, _ := m.scoreGroup.Do(chID, func() (interface{}, error) {
		return provider.ScoreChallenge(ctx, brief, question, answer, latest)
	})
	if err != nil {
		return game.ScoreResult{}, err
	}
	res, _ := v.(game.ScoreResult)
	return res, nil
}
