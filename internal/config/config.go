package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yuuto7838/adsim/internal/engine"
	"github.com/yuuto7838/adsim/internal/game"
	"github.com/yuuto7838/adsim/internal/geminiclient"
)

type channelEntry struct {
	Name     string  `json:"name"`
	BaseCPM  float64 `json:"base_cpm"`
	BaseCTR  float64 `json:"base_ctr"`
	BaseCVR  float64 `json:"base_cvr"`
	BaseROAS float64 `json:"base_roas"`
}

type rawConfig struct {
	ChannelList []channelEntry `json:"channel_list"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
	RunDelayMS int `json:"run_delay_ms"`
	// Optional prompt templates overriding the built-in Gemini prompts.
	// See geminiclient.Templates for the token each template may use.
	BriefPrompt     string `json:"brief_prompt"`
	QAPrompt        string `json:"qa_prompt"`
	ChallengePrompt string `json:"challenge_prompt"`
	ScorePrompt     string `json:"score_prompt"`
}

// LoadedConfig contains the channel profiles, server address, pacing delay
// and prompt templates.
type LoadedConfig struct {
	Profiles      engine.Profiles
	ServerAddress string
	RunDelay      time.Duration
	Templates     geminiclient.Templates
}

// Defaults returns the configuration used when no config file exists:
// built-in channel archetypes, default prompts, one-second pacing.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		Profiles:      engine.DefaultProfiles(),
		ServerAddress: ":8080",
		RunDelay:      time.Second,
	}
}

// LoadConfig reads the configuration file at path. Channel entries, when
// present, must name known channels exactly once each with positive
// baselines; omitted sections keep their defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := Defaults()

	if len(rc.ChannelList) > 0 {
		profiles := make(engine.Profiles, len(rc.ChannelList))
		for _, e := range rc.ChannelList {
			ch := game.Channel(e.Name)
			if !game.ValidChannel(ch) {
				return nil, fmt.Errorf("config file %s: unknown channel %q", path, e.Name)
			}
			if _, dup := profiles[ch]; dup {
				return nil, fmt.Errorf("config file %s: duplicate channel %q", path, e.Name)
			}
			if e.BaseCPM <= 0 || e.BaseCTR <= 0 || e.BaseCVR <= 0 || e.BaseROAS <= 0 {
				return nil, fmt.Errorf("config file %s: channel %q needs positive baselines", path, e.Name)
			}
			profiles[ch] = engine.ChannelProfile{
				BaseCPM:  e.BaseCPM,
				BaseCTR:  e.BaseCTR,
				BaseCVR:  e.BaseCVR,
				BaseROAS: e.BaseROAS,
			}
		}
		for _, ch := range game.Channels() {
			if _, ok := profiles[ch]; !ok {
				return nil, fmt.Errorf("config file %s: channel_list missing %q", path, ch)
			}
		}
		out.Profiles = profiles
	}

	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.RunDelayMS > 0 {
		out.RunDelay = time.Duration(rc.RunDelayMS) * time.Millisecond
	}
	out.Templates = geminiclient.Templates{
		Brief:             rc.BriefPrompt,
		QA:                rc.QAPrompt,
		ChallengeQuestion: rc.ChallengePrompt,
		ChallengeScore:    rc.ScorePrompt,
	}
	return out, nil
}
