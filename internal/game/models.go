package game

import "fmt"

// Channel is a string alias identifying an advertising placement venue.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type Channel string

const (
	ChannelGoogle Channel = "google"
	ChannelMeta   Channel = "meta"
	ChannelTikTok Channel = "tiktok"
)

// Channels returns the fixed channel set in display order.
func Channels() []Channel {
	return []Channel{ChannelGoogle, ChannelMeta, ChannelTikTok}
}

// ValidChannel reports whether c is one of the fixed channel ids.
func ValidChannel(c Channel) bool {
	switch c {
	case ChannelGoogle, ChannelMeta, ChannelTikTok:
		return true
	}
	return false
}

// Brief is the client scenario the player works against. It is created by
// the brief provider and immutable afterwards, except for Budget which is
// adjusted by quarterly review bonuses.
type Brief struct {
	ClientName     string  `json:"client_name"`
	Product        string  `json:"product"`
	Objective      string  `json:"objective"`
	ProductDetails string  `json:"product_details"`
	Challenges     string  `json:"challenges"`
	Budget         float64 `json:"budget"`
	TargetCPA      float64 `json:"target_cpa"`
	MinROAS        float64 `json:"min_roas"`
	Audience       string  `json:"audience"`
	// BestChannel is the hidden channel the scenario rewards. It must never
	// be surfaced to the player directly; the engine uses it for the luck
	// bonus and the evaluator prompts are instructed not to reveal it.
	BestChannel Channel `json:"best_channel"`
}

// Allocation maps each channel to the currency amount planned for the
// current month. All channels are always present; unallocated means zero.
type Allocation map[Channel]float64

// NewAllocation returns an all-zero allocation covering every channel.
func NewAllocation() Allocation {
	a := make(Allocation, len(Channels()))
	for _, c := range Channels() {
		a[c] = 0
	}
	return a
}

// Total returns the summed spend across all channels.
func (a Allocation) Total() float64 {
	var t float64
	for _, v := range a {
		t += v
	}
	return t
}

// Clone returns an independent copy of the allocation.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for c, v := range a {
		out[c] = v
	}
	return out
}

// Date is a simulated in-game month. Year starts at 1, Month runs 1..12.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// StartDate is the date every fresh session begins at.
func StartDate() Date { return Date{Year: 1, Month: 1} }

// Next returns the following month, wrapping December into the next year.
func (d Date) Next() Date {
	d.Month++
	if d.Month > 12 {
		d.Month = 1
		d.Year++
	}
	return d
}

func (d Date) String() string {
	return fmt.Sprintf("Y%d-M%02d", d.Year, d.Month)
}

// ChannelResult holds the computed metrics for one channel in one month.
// A channel with zero spend has no ChannelResult at all (nil in the month's
// channel map).
type ChannelResult struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	CPA         float64 `json:"cpa"`
	CPM         float64 `json:"cpm"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
	ROAS        float64 `json:"roas"`
}

// Totals aggregates a month across channels. CPA and ROAS are 0 when their
// denominator is zero (sentinel, not an error).
type Totals struct {
	Spend       float64 `json:"spend"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	CPA         float64 `json:"cpa"`
	ROAS        float64 `json:"roas"`
}

// MonthResult is the immutable outcome of one simulated month.
type MonthResult struct {
	Date     Date                       `json:"date"`
	Total    Totals                     `json:"total"`
	Channels map[Channel]*ChannelResult `json:"channels"`
}

// QAExchange is one entry in the client Q&A log. Answer stays a pending
// placeholder until the evaluator responds; responses are matched back by
// ID, never by position.
type QAExchange struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Pending  bool   `json:"pending"`
}

// Challenge is the quarterly client review. Exactly one exists at a time;
// it is replaced at the next quarterly cycle. Score stays 0 and Feedback
// empty until the answer has been graded.
type Challenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
}

// Scored reports whether the challenge has received feedback. The state
// machine only allows leaving the CHALLENGE view once this is true.
func (c *Challenge) Scored() bool {
	return c != nil && c.Feedback != ""
}

// ScoreResult is the evaluator's grading of a challenge answer. BudgetBonus
// is a signed currency amount already derived from the score by the
// evaluator (score >= 8 positive, score <= 3 negative, else 0).
type ScoreResult struct {
	Score       int     `json:"score"`
	Feedback    string  `json:"feedback"`
	BudgetBonus float64 `json:"budget_bonus"`
}
