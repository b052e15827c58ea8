package engine

import (
	"errors"

	"github.com/yuuto7838/adsim/internal/game"
)

// ErrChallengeAlreadyScored is returned when a score is applied to a
// challenge that already carries feedback. The evaluator is only asked
// once per challenge; a second application would double the bonus.
var ErrChallengeAlreadyScored = errors.New("challenge already scored")

// ApplyScoreResult stores the evaluator's grading verbatim on the challenge
// and applies the budget bonus to the brief. It trusts the caller (the
// evaluator contract) to have derived the bonus from the score; no policy
// lives here. A penalty can never push the budget below zero.
func ApplyScoreResult(ch *game.Challenge, brief *game.Brief, res game.ScoreResult) error {
	if ch == nil || brief == nil {
		return errors.New("challenge and brief are required")
	}
	if ch.Scored() {
		return ErrChallengeAlreadyScored
	}

	ch.Score = res.Score
	ch.Feedback = res.Feedback

	if res.BudgetBonus != 0 {
		brief.Budget += res.BudgetBonus
		if brief.Budget < 0 {
			brief.Budget = 0
		}
	}
	return nil
}
