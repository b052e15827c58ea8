package engine

import "math/rand"

// LuckSource draws one performance multiplier per channel per month.
// Production draws uniformly from [0.8, 1.2); tests inject a fixed value.
type LuckSource interface {
	Draw() float64
}

type randLuck struct {
	r *rand.Rand
}

func (l randLuck) Draw() float64 {
	return 0.8 + l.r.Float64()*0.4
}

// NewLuckSource returns the production luck source seeded from seed.
func NewLuckSource(seed int64) LuckSource {
	return randLuck{r: rand.New(rand.NewSource(seed))}
}
