package engine

import (
	"errors"
	"math"
	"strings"

	"github.com/yuuto7838/adsim/internal/game"
)

// ErrBudgetExceeded is returned when the summed allocation is larger than
// the brief budget. The session manager checks this before entering the
// RUNNING view, but the engine rejects over-budget input on its own as
// well so it can never produce an impossible month.
var ErrBudgetExceeded = errors.New("allocation exceeds budget")

// ChannelProfile holds the fixed baseline parameters of one channel
// archetype.
type ChannelProfile struct {
	BaseCPM  float64 `json:"base_cpm"`
	BaseCTR  float64 `json:"base_ctr"`
	BaseCVR  float64 `json:"base_cvr"`
	BaseROAS float64 `json:"base_roas"`
}

// Profiles maps each channel id to its baseline parameters.
type Profiles map[game.Channel]ChannelProfile

// DefaultProfiles returns the built-in channel archetypes: search (high
// intent, expensive), social precision (higher CPM, best ROAS) and short
// video (cheap reach, weak conversion).
func DefaultProfiles() Profiles {
	return Profiles{
		game.ChannelGoogle: {BaseCPM: 500, BaseCTR: 0.02, BaseCVR: 0.05, BaseROAS: 2.5},
		game.ChannelMeta:   {BaseCPM: 800, BaseCTR: 0.015, BaseCVR: 0.04, BaseROAS: 3.0},
		game.ChannelTikTok: {BaseCPM: 400, BaseCTR: 0.01, BaseCVR: 0.03, BaseROAS: 1.5},
	}
}

// BestChannelBonus is added to the luck draw for the brief's hidden best
// channel. This is how the scenario rewards the right pick without ever
// revealing it.
const BestChannelBonus = 0.3

// Simulate computes one month of campaign results. It is the sole source of
// randomness in the system; all draws come from luck, so a stubbed source
// makes the function fully deterministic.
//
// Channels with zero allocation produce a nil entry in the result map and
// contribute nothing to the totals.
func Simulate(alloc game.Allocation, budget float64, profiles Profiles, bestChannel game.Channel, date game.Date, luck LuckSource) (game.MonthResult, error) {
	if alloc.Total() > budget {
		return game.MonthResult{}, ErrBudgetExceeded
	}

	best := game.Channel(strings.ToLower(string(bestChannel)))
	res := game.MonthResult{
		Date:     date,
		Channels: make(map[game.Channel]*game.ChannelResult, len(profiles)),
	}

	for _, ch := range game.Channels() {
		amount := alloc[ch]
		if amount <= 0 {
			res.Channels[ch] = nil
			continue
		}
		prof, ok := profiles[ch]
		if !ok {
			res.Channels[ch] = nil
			continue
		}

		l := luck.Draw()
		if ch == best {
			l += BestChannelBonus
		}

		// Lower luck makes impressions more expensive; higher luck lifts
		// engagement and return.
		cpm := prof.BaseCPM / l
		ctr := prof.BaseCTR * l
		cvr := prof.BaseCVR * l

		impressions := int64(math.Floor(amount / cpm * 1000))
		clicks := int64(math.Floor(float64(impressions) * ctr))
		conversions := int64(math.Floor(float64(clicks) * cvr))
		revenue := amount * prof.BaseROAS * l

		cpa := 0.0
		if conversions > 0 {
			cpa = amount / float64(conversions)
		}
		roas := 0.0
		if amount > 0 {
			roas = revenue / amount
		}

		res.Channels[ch] = &game.ChannelResult{
			Spend:       amount,
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: conversions,
			Revenue:     revenue,
			CPA:         cpa,
			CPM:         cpm,
			CTR:         ctr,
			CVR:         cvr,
			ROAS:        roas,
		}

		res.Total.Spend += amount
		res.Total.Conversions += conversions
		res.Total.Revenue += revenue
	}

	if res.Total.Conversions > 0 {
		res.Total.CPA = res.Total.Spend / float64(res.Total.Conversions)
	}
	if res.Total.Spend > 0 {
		res.Total.ROAS = res.Total.Revenue / res.Total.Spend
	}
	return res, nil
}
