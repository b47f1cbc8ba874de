// Package config loads the settings of the uttt command.
package config

import (
	"encoding/json"
	"net"
	"os"
	"sort"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Server struct {
	Addr            string `json:"addr"`
	WatchIntervalMs int    `json:"watch_interval_ms"`
}

type Log struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type Arena struct {
	Games   int `json:"games"`
	Workers int `json:"workers"`
}

type Config struct {
	Server Server              `json:"server"`
	Log    Log                 `json:"log"`
	Arena  Arena               `json:"arena"`
	Tiers  map[string]bot.Tier `json:"tiers"`
}

func Default() *Config {
	return &Config{
		Server: Server{Addr: ":5000", WatchIntervalMs: 500},
		Log:    Log{Level: "info", Pretty: true},
		Arena:  Arena{Games: 100, Workers: 2},
		Tiers:  bot.DefaultTiers(),
	}
}

// Read the config file over the defaults. Tiers present in the file
// replace the default tier of the same name, the other ones are kept.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if err := cfg.Merge(data); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Merge(data []byte) error {
	defaults := c.Tiers
	c.Tiers = nil
	if err := json.Unmarshal(data, c); err != nil {
		c.Tiers = defaults
		return errors.Wrap(err, "invalid json")
	}

	if defaults == nil {
		defaults = make(map[string]bot.Tier, len(c.Tiers))
	}
	for name, tier := range c.Tiers {
		defaults[name] = tier
	}
	c.Tiers = defaults
	return nil
}

// Check every setting, all problems are reported at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "server.addr %q", c.Server.Addr))
	}
	if c.Server.WatchIntervalMs <= 0 {
		result = multierror.Append(result, errors.Errorf("server.watch_interval_ms must be positive, got %d", c.Server.WatchIntervalMs))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "log.level"))
	}
	if c.Arena.Games < 1 {
		result = multierror.Append(result, errors.Errorf("arena.games must be at least 1, got %d", c.Arena.Games))
	}
	if c.Arena.Workers < 1 {
		result = multierror.Append(result, errors.Errorf("arena.workers must be at least 1, got %d", c.Arena.Workers))
	}

	// Sorted, for a stable error message
	names := make([]string, 0, len(c.Tiers))
	for name := range c.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Tiers[name].Validate(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "tiers[%q]", name))
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) BotOptions(logger *zerolog.Logger) bot.Options {
	return bot.Options{Logger: logger, Tiers: c.Tiers}
}
