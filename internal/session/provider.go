package session

import (
	"context"

	"github.com/yuuto7838/adsim/internal/game"
)

// Provider is the remote generative collaborator: it supplies briefs,
// answers in-character questions, and asks and grades the quarterly review.
// Every call is treated as a black-box request/response that may fail.
type Provider interface {
	GenerateBrief(ctx context.Context) (*game.Brief, error)
	AskClient(ctx context.Context, brief *game.Brief, question string) (string, error)
	GenerateChallengeQuestion(ctx context.Context, brief *game.Brief, latest *game.MonthResult) (string, error)
	ScoreChallenge(ctx context.Context, brief *game.Brief, question, answer string, latest *game.MonthResult) (game.ScoreResult, error)
}

// ProviderFactory builds a Provider for an API key submitted at runtime.
type ProviderFactory func(apiKey string) Provider
