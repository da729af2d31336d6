package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Data     DataConfig     `yaml:"data" json:"data"`
	Rewards  Rewards        `yaml:"rewards" json:"rewards"`
	Pomodoro PomodoroConfig `yaml:"pomodoro" json:"pomodoro"`
	Pet      PetConfig      `yaml:"pet" json:"pet"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
	// EventsDB is the path of the sqlite event log. Empty means the
	// ledger lives in memory only and is lost on restart.
	EventsDB string `yaml:"events_db" json:"events_db"`
}

type PomodoroConfig struct {
	FocusMinutes      int `yaml:"focus_minutes" json:"focus_minutes"`
	ShortBreakMinutes int `yaml:"short_break_minutes" json:"short_break_minutes"`
	LongBreakMinutes  int `yaml:"long_break_minutes" json:"long_break_minutes"`
}

type PetConfig struct {
	StartHappiness      int `yaml:"start_happiness" json:"start_happiness"`
	FocusHappinessBoost int `yaml:"focus_happiness_boost" json:"focus_happiness_boost"`
	DailyHappinessDecay int `yaml:"daily_happiness_decay" json:"daily_happiness_decay"`
}

func (p *PomodoroConfig) ApplyDefaults() {
	if p.FocusMinutes == 0 {
		p.FocusMinutes = 25
	}
	if p.ShortBreakMinutes == 0 {
		p.ShortBreakMinutes = 5
	}
	if p.LongBreakMinutes == 0 {
		p.LongBreakMinutes = 15
	}
}

func (p *PetConfig) ApplyDefaults() {
	if p.StartHappiness == 0 {
		p.StartHappiness = 80
	}
	if p.FocusHappinessBoost == 0 {
		p.FocusHappinessBoost = 5
	}
	if p.DailyHappinessDecay == 0 {
		p.DailyHappinessDecay = 3
	}
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8484"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Rewards == (Rewards{}) {
		c.Rewards = DefaultRewards()
	}
	c.Pomodoro.ApplyDefaults()
	c.Pet.ApplyDefaults()
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadOrDefault loads the config file if it exists and falls back to
// defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if os.IsNotExist(err) {
		c = &Config{}
		c.ApplyDefaults()
		return c, nil
	}
	return c, err
}
