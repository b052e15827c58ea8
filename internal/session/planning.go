package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yuuto7838/adsim/internal/constants"
	"github.com/yuuto7838/adsim/internal/engine"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

// AcceptBrief is the BRIEF → PLANNING transition: the player takes the job.
func (m *Manager) AcceptBrief() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.View != game.ViewBrief {
		return ErrInvalidTransition
	}
	m.setView(game.ViewPlanning)
	return nil
}

// RegenerateBrief replaces the current brief from the BRIEF view. The
// session data resets like a fresh start, except the in-game date is kept.
func (m *Manager) RegenerateBrief(ctx context.Context) error {
	m.mu.Lock()
	if m.s.View == game.ViewLoading {
		m.mu.Unlock()
		return ErrDuplicateSubmission
	}
	if m.s.View != game.ViewBrief {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	provider := m.provider
	m.archiveCurrentRun()
	token := m.beginLoading()
	m.mu.Unlock()

	brief, err := m.generateBrief(ctx, provider)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stillLoading(token) {
		logging.Warn("stale brief regeneration discarded", logging.Fields{constants.LogFieldView: string(m.s.View)})
		return ErrStaleOperation
	}
	if err != nil {
		m.setView(game.ViewAwaitingCredentials)
		logging.Error("brief regeneration failed", err, nil)
		return fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	m.s.ResetForBrief(brief, uuid.NewString(), true)
	m.setView(game.ViewBrief)
	logging.Info("brief regenerated", logging.Fields{constants.LogFieldClient: brief.ClientName})
	return nil
}

// SetAllocation replaces the monthly plan. Only legal while PLANNING; the
// budget ceiling is enforced at run time, not here, so the player can see
// an over-budget draft.
func (m *Manager) SetAllocation(alloc map[game.Channel]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.View != game.ViewPlanning {
		return ErrInvalidTransition
	}
	next := game.NewAllocation()
	for ch, amount := range alloc {
		if !game.ValidChannel(ch) {
			return fmt.Errorf("%w: unknown channel %q", ErrInvalidAllocation, ch)
		}
		if amount < 0 {
			return fmt.Errorf("%w: negative amount for %s", ErrInvalidAllocation, ch)
		}
		next[ch] = amount
	}
	m.s.Allocation = next
	return nil
}

// Run executes the month: PLANNING → RUNNING → (pacing delay) → RESULT.
// The delay is awaited in the caller's goroutine; concurrent observers see
// the RUNNING view and a second run request is rejected, not queued.
func (m *Manager) Run() error {
	m.mu.Lock()
	if m.s.View == game.ViewRunning {
		m.mu.Unlock()
		return ErrDuplicateSubmission
	}
	if m.s.View != game.ViewPlanning {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	if m.s.Allocation.Total() > m.s.Brief.Budget {
		m.mu.Unlock()
		return ErrBudgetExceeded
	}

	epoch := m.s.BriefEpoch
	alloc := m.s.Allocation.Clone()
	budget := m.s.Brief.Budget
	best := m.s.Brief.BestChannel
	date := m.s.Date
	m.setView(game.ViewRunning)
	m.mu.Unlock()

	<-m.clock.After(m.runDelay)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.View != game.ViewRunning || m.s.BriefEpoch != epoch {
		logging.Warn("stale run result discarded", logging.Fields{constants.LogFieldView: string(m.s.View), constants.LogFieldEpoch: epoch})
		return ErrStaleOperation
	}

	res, err := engine.Simulate(alloc, budget, m.profiles, best, date, m.luck)
	if err != nil {
		// The budget was checked before RUNNING; reaching this means the
		// engine rejected anyway. Return to planning untouched.
		m.setView(game.ViewPlanning)
		return ErrBudgetExceeded
	}

	r := res
	m.s.LastResult = &r
	m.s.History = append(m.s.History, res)
	m.setView(game.ViewResult)
	logging.Info("month simulated", logging.Fields{
		constants.LogFieldYear:  date.Year,
		constants.LogFieldMonth: date.Month,
		"spend":                 res.Total.Spend,
		"roas":                  res.Total.ROAS,
	})
	return nil
}

// NextMonth advances the date, resets the allocation and returns to
// PLANNING — or, every third completed month, detours into the quarterly
// client review instead.
func (m *Manager) NextMonth(ctx context.Context) error {
	m.mu.Lock()
	if m.s.View != game.ViewResult {
		m.mu.Unlock()
		return ErrInvalidTransition
	}

	m.s.Date = m.s.Date.Next()
	m.s.Allocation = game.NewAllocation()

	if len(m.s.History) == 0 || len(m.s.History)%3 != 0 {
		m.setView(game.ViewPlanning)
		m.mu.Unlock()
		return nil
	}

	// Quarterly review: fetch the client's question before showing the
	// CHALLENGE view.
	provider := m.provider
	brief := m.s.Brief
	latest := m.s.LastResult
	token := m.beginLoading()
	m.mu.Unlock()

	question, err := m.generateChallengeQuestion(ctx, provider, brief, latest)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stillLoading(token) {
		logging.Warn("stale challenge question discarded", nil)
		return ErrStaleOperation
	}
	if err != nil {
		// Inline placeholder: the review still happens, with a canned
		// question, rather than dead-ending the session.
		logging.Error("challenge question generation failed", err, nil)
		question = constants.ChallengeQuestionFallback
	}

	m.s.Challenge = &game.Challenge{ID: uuid.NewString(), Question: question}
	m.setView(game.ViewChallenge)
	logging.Info("quarterly review started", logging.Fields{constants.LogFieldChallenge: m.s.Challenge.ID})
	return nil
}

func (m *Manager) generateChallengeQuestion(ctx context.Context, provider Provider, brief *game.Brief, latest *game.MonthResult) (string, error) {
	v, err, _ := m.briefGroup.Do("challenge-question", func() (interface{}, error) {
		return provider.GenerateChallengeQuestion(ctx, brief, latest)
	})
	if err != nil {
		return "", err
	}
	q, _ := v.(string)
	return q, nil
}
