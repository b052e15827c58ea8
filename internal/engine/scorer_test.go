package engine

import (
	"testing"

	"github.com/yuuto7838/adsim/internal/game"
)

func TestApplyScoreResult_HighScoreRaisesBudget(t *testing.T) {
	ch := &game.Challenge{ID: "c1", Question: "Q", Answer: "A"}
	brief := &game.Brief{Budget: 1000000}

	err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 9, Feedback: "よくできました", BudgetBonus: 500000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brief.Budget != 1500000 {
		t.Fatalf("expected budget 1500000, got %v", brief.Budget)
	}
	if ch.Score != 9 || ch.Feedback == "" {
		t.Fatalf("score/feedback not stored: %+v", ch)
	}
}

func TestApplyScoreResult_LowScoreCutsBudget(t *testing.T) {
	ch := &game.Challenge{ID: "c2", Question: "Q", Answer: "A"}
	brief := &game.Brief{Budget: 1000000}

	if err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 2, Feedback: "厳しい", BudgetBonus: -300000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brief.Budget != 700000 {
		t.Fatalf("expected budget 700000, got %v", brief.Budget)
	}
}

func TestApplyScoreResult_MidScoreLeavesBudget(t *testing.T) {
	ch := &game.Challenge{ID: "c3", Question: "Q", Answer: "A"}
	brief := &game.Brief{Budget: 1000000}

	if err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 5, Feedback: "普通", BudgetBonus: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brief.Budget != 1000000 {
		t.Fatalf("expected budget unchanged, got %v", brief.Budget)
	}
}

func TestApplyScoreResult_ClampsBudgetAtZero(t *testing.T) {
	ch := &game.Challenge{ID: "c4", Question: "Q", Answer: "A"}
	brief := &game.Brief{Budget: 200000}

	if err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 1, Feedback: "契約見直し", BudgetBonus: -500000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brief.Budget != 0 {
		t.Fatalf("expected budget clamped to 0, got %v", brief.Budget)
	}
}

func TestApplyScoreResult_RejectsSecondApplication(t *testing.T) {
	ch := &game.Challenge{ID: "c5", Question: "Q", Answer: "A"}
	brief := &game.Brief{Budget: 1000000}

	if err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 8, Feedback: "good", BudgetBonus: 100000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ApplyScoreResult(ch, brief, game.ScoreResult{Score: 8, Feedback: "good", BudgetBonus: 100000}); err != ErrChallengeAlreadyScored {
		t.Fatalf("expected ErrChallengeAlreadyScored, got %v", err)
	}
	if brief.Budget != 1100000 {
		t.Fatalf("bonus applied twice: %v", brief.Budget)
	}
}
