package geminiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/logging"
)

const defaultBriefPrompt = `You are a simulator engine for an ad agency game in Japan. Create a fictional client scenario.
Return ONLY a JSON object with the following fields (ALL text content MUST be in Japanese):
- clientName: string (Fictional Company Name in Japanese)
- product: string (Product/Service Name in Japanese)
- objective: string (Campaign Objective in Japanese)
- productDetails: string (Detailed description of product, 2-3 sentences in Japanese)
- challenges: string (Bulleted list of 3 marketing challenges in Japanese)
- budget: number (Between 500,000 and 5,000,000 JPY)
- targetCPA: number (Appropriate CPA for the industry, in JPY)
- minROAS: number (Between 1.5 and 4.0)
- audience: string (Target Audience description in Japanese)
- bestChannel: string (One of: "google", "meta", "tiktok")

The industry can be Random (SaaS, E-commerce, Game, B2B, Recruitment, Real Estate, etc).
Ensure all text values are in natural business Japanese.`

// briefPayload mirrors the JSON the model is asked for. Field names follow
// the prompt, not this module's snake_case convention.
type briefPayload struct {
	ClientName     string  `json:"clientName"`
	Product        string  `json:"product"`
	Objective      string  `json:"objective"`
	ProductDetails string  `json:"productDetails"`
	Challenges     string  `json:"challenges"`
	Budget         float64 `json:"budget"`
	TargetCPA      float64 `json:"targetCPA"`
	MinROAS        float64 `json:"minROAS"`
	Audience       string  `json:"audience"`
	BestChannel    string  `json:"bestChannel"`
}

// GenerateBrief asks the model for a fresh client scenario and validates it
// before any of it touches session state.
func (c *Client) GenerateBrief(ctx context.Context) (*game.Brief, error) {
	prompt := c.templates.Brief
	if prompt == "" {
		prompt = defaultBriefPrompt
	}

	var raw briefPayload
	if err := c.generateJSON(ctx, prompt, &raw); err != nil {
		return nil, err
	}
	b, err := validateBrief(raw)
	if err != nil {
		return nil, err
	}
	logging.Info("brief generated", logging.Fields{"client": b.ClientName, "budget": b.Budget})
	return b, nil
}

func validateBrief(raw briefPayload) (*game.Brief, error) {
	missing := func(field string) error {
		return fmt.Errorf("brief missing required field %q", field)
	}
	switch {
	case strings.TrimSpace(raw.ClientName) == "":
		return nil, missing("clientName")
	case strings.TrimSpace(raw.Product) == "":
		return nil, missing("product")
	case strings.TrimSpace(raw.Objective) == "":
		return nil, missing("objective")
	case strings.TrimSpace(raw.Audience) == "":
		return nil, missing("audience")
	}
	if raw.Budget <= 0 {
		return nil, fmt.Errorf("brief has non-positive budget %v", raw.Budget)
	}

	best := game.Channel(strings.ToLower(strings.TrimSpace(raw.BestChannel)))
	if !game.ValidChannel(best) {
		return nil, fmt.Errorf("brief has unknown bestChannel %q", raw.BestChannel)
	}

	return &game.Brief{
		ClientName:     strings.TrimSpace(raw.ClientName),
		Product:        strings.TrimSpace(raw.Product),
		Objective:      strings.TrimSpace(raw.Objective),
		ProductDetails: strings.TrimSpace(raw.ProductDetails),
		Challenges:     strings.TrimSpace(raw.Challenges),
		Budget:         raw.Budget,
		TargetCPA:      raw.TargetCPA,
		MinROAS:        raw.MinROAS,
		Audience:       strings.TrimSpace(raw.Audience),
		BestChannel:    best,
	}, nil
}
