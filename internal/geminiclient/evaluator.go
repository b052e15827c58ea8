package geminiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

const defaultQAPrompt = `You are the client "{{client_name}}".
The user is your ad agency partner.
Context: Product={{product}}, Budget=¥{{budget}}, Audience={{audience}}, BestChannel={{best_channel}}
User asks: "{{question}}"
Answer in character (Polite Japanese). Short. Don't spoil BestChannel directly.`

const defaultChallengePrompt = `You are the client "{{client_name}}". It is the end of Quarter Review (3 months passed).
Recent Monthly Result: Spend=¥{{spend}}, CPA=¥{{cpa}}, ROAS={{roas}}.
Target: CPA < ¥{{target_cpa}}, ROAS > {{min_roas}}.

Ask the user ONE tough question about the results or their strategy.
Examples:
- "Why is the CPA higher than target?"
- "Why did you allocate so much budget to [Channel with high spend]?"
- "We need better ROAS. What is your plan?"

Return ONLY the question string in Japanese.`

const defaultScorePrompt = `You are the client. You asked: "{{question}}"
User answered: "{{answer}}"

Evaluate the answer based on:
1. Logical consistency with marketing principles.
2. Professionalism.
3. Alignment with the results (Spend: {{spend}}, CPA: {{cpa}}).

Return a JSON object:
{
    "score": number (1-10),
    "feedback": string (Your reaction/comment in Japanese. Be strict but fair.),
    "budgetBonus": number (If score >= 8, give bonus amount e.g. 500000. If score <= 3, negative amount. Else 0.)
}`

// AskClient answers a free-text question in the client's voice. The prompt
// carries the hidden best channel as context but instructs the model never
// to reveal it.
func (c *Client) AskClient(ctx context.Context, brief *game.Brief, question string) (string, error) {
	prompt := c.templates.QA
	if prompt == "" {
		prompt = defaultQAPrompt
	}
	prompt = fill(prompt, map[string]string{
		"client_name":  brief.ClientName,
		"product":      brief.Product,
		"budget":       fmt.Sprintf("%.0f", brief.Budget),
		"audience":     brief.Audience,
		"best_channel": string(brief.BestChannel),
		"question":     question,
	})

	answer, err := c.generateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("gemini returned empty answer")
	}
	return answer, nil
}

// GenerateChallengeQuestion produces the quarterly review question, seeded
// with the latest month totals against the brief targets.
func (c *Client) GenerateChallengeQuestion(ctx context.Context, brief *game.Brief, latest *game.MonthResult) (string, error) {
	prompt := c.templates.ChallengeQuestion
	if prompt == "" {
		prompt = defaultChallengePrompt
	}
	prompt = fill(prompt, resultTokens(brief, latest))

	q, err := c.generateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("gemini returned empty question")
	}
	return q, nil
}

type scorePayload struct {
	Score       float64 `json:"score"`
	Feedback    string  `json:"feedback"`
	BudgetBonus float64 `json:"budgetBonus"`
}

// ScoreChallenge grades the player's answer. The returned result is
// validated (score in 1..10, non-empty feedback) so malformed model output
// surfaces as a provider failure instead of corrupting the challenge.
func (c *Client) ScoreChallenge(ctx context.Context, brief *game.Brief, question, answer string, latest *game.MonthResult) (game.ScoreResult, error) {
	prompt := c.templates.ChallengeScore
	if prompt == "" {
		prompt = defaultScorePrompt
	}
	tokens := resultTokens(brief, latest)
	tokens["question"] = question
	tokens["answer"] = answer
	prompt = fill(prompt, tokens)

	var raw scorePayload
	if err := c.generateJSON(ctx, prompt, &raw); err != nil {
		return game.ScoreResult{}, err
	}

	score := int(raw.Score)
	if score < 1 || score > 10 {
		return game.ScoreResult{}, fmt.Errorf("score out of range: %v", raw.Score)
	}
	if strings.TrimSpace(raw.Feedback) == "" {
		return game.ScoreResult{}, fmt.Errorf("score result missing feedback")
	}

	logging.Info("challenge scored", logging.Fields{"score": score, "bonus": raw.BudgetBonus})
	return game.ScoreResult{
		Score:       score,
		Feedback:    strings.TrimSpace(raw.Feedback),
		BudgetBonus: raw.BudgetBonus,
	}, nil
}

func resultTokens(brief *game.Brief, latest *game.MonthResult) map[string]string {
	tokens := map[string]string{
		"client_name": brief.ClientName,
		"target_cpa":  fmt.Sprintf("%.0f", brief.TargetCPA),
		"min_roas":    fmt.Sprintf("%.2f", brief.MinROAS),
		"spend":       "0",
		"cpa":         "0",
		"roas":        "0.00",
	}
	if latest != nil {
		tokens["spend"] = fmt.Sprintf("%.0f", latest.Total.Spend)
		tokens["cpa"] = fmt.Sprintf("%.0f", latest.Total.CPA)
		tokens["roas"] = fmt.Sprintf("%.2f", latest.Total.ROAS)
	}
	return tokens
}
