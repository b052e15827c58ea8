package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process environment configuration. The game's Gemini API key
// is deliberately absent: it is submitted by the player through the
// credential gate, not configured on the server.
type Env struct {
	ConfigPath string `env:"ADSIM_CONFIG" envDefault:"./adsim_config.json"`
	DBPath     string `env:"ADSIM_DB" envDefault:"./data/adsim.db"`
	Addr       string `env:"ADSIM_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
