package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

// AskQuestion appends a pending QA exchange and resolves it asynchronously.
// Multiple questions may be outstanding at once; each completion is matched
// back to its exchange by id, so answers arriving out of submission order
// (or after the brief was replaced) are attributed correctly or discarded.
func (m *Manager) AskQuestion(ctx context.Context, question string) (game.QAExchange, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return game.QAExchange{}, ErrInvalidTransition
	}

	m.mu.Lock()
	if m.s.View != game.ViewPlanning && m.s.View != game.ViewResult {
		m.mu.Unlock()
		return game.QAExchange{}, ErrInvalidTransition
	}

	qa := game.QAExchange{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   constants.QAAnswerPending,
		Pending:  true,
	}
	m.s.QALog = append(m.s.QALog, qa)

	provider := m.provider
	brief := m.s.Brief
	epoch := m.s.BriefEpoch
	m.mu.Unlock()

	// The caller's request finishes as soon as the exchange is appended;
	// the answer resolves on a context that outlives it.
	go m.resolveQuestion(context.WithoutCancel(ctx), provider, brief, epoch, qa.ID, question)
	return qa, nil
}

func (m *Manager) resolveQuestion(ctx context.Context, provider Provider, brief *game.Brief, epoch, qaID, question string) {
	answer, err := provider.AskClient(ctx, brief, question)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.BriefEpoch != epoch {
		logging.Warn("stale QA answer discarded", logging.Fields{constants.LogFieldQAID: qaID})
		return
	}
	entry := m.s.FindQA(qaID)
	if entry == nil {
		logging.Warn("QA answer for unknown exchange discarded", logging.Fields{constants.LogFieldQAID: qaID})
		return
	}
	if err != nil {
		logging.Error("QA answer failed", err, logging.Fields{constants.LogFieldQAID: qaID})
		entry.Answer = constants.QAAnswerFailed
	} else {
		entry.Answer = answer
	}
	entry.Pending = false
}
