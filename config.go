package approver

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/approver/internal/logging"
	"github.com/viant/approver/service/approval"
	"github.com/viant/approver/service/meta"
)

// Config is a serialisable representation of the approver configuration. It is
// read once at startup; levels are never changed afterwards.
type Config struct {
	Chain []LevelConfig `json:"chain" yaml:"chain"`
	Log   LogConfig     `json:"log" yaml:"log"`
	Trace TraceConfig   `json:"trace" yaml:"trace"`
}

// LevelConfig describes one chain level. Role selects a built-in authority;
// Name and Threshold override (or, without Role, define) it.
type LevelConfig struct {
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Threshold int    `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

type TraceConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Service    string `json:"service,omitempty" yaml:"service,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns the Manager, Director, Vice President chain.
func DefaultConfig() *Config {
	ret := &Config{
		Log:   LogConfig{Level: "info", Format: logging.FormatText},
		Trace: TraceConfig{Service: "approver", Version: "0.1.0"},
	}
	for _, role := range approval.Roles() {
		ret.Chain = append(ret.Chain, LevelConfig{Role: strings.ToLower(strings.ReplaceAll(role.String(), " ", ""))})
	}
	return ret
}

// Levels resolves the configured chain into approval levels.
func (c *Config) Levels() ([]approval.Level, error) {
	levels := make([]approval.Level, 0, len(c.Chain))
	for i, item := range c.Chain {
		var level approval.Level
		if item.Role != "" {
			role, err := approval.ParseRole(item.Role)
			if err != nil {
				return nil, fmt.Errorf("chain[%d]: %w", i, err)
			}
			level = role.Level()
		}
		if item.Name != "" {
			level.Name = item.Name
		}
		if item.Threshold != 0 {
			level.Threshold = item.Threshold
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if len(c.Chain) == 0 {
		return fmt.Errorf("chain: %w", approval.ErrEmptyChain)
	}
	levels, err := c.Levels()
	if err != nil {
		return err
	}
	for i, level := range levels {
		if level.Name == "" {
			return fmt.Errorf("chain[%d]: %w: name or role is required", i, approval.ErrInvalidLevel)
		}
		if level.Threshold <= 0 {
			return fmt.Errorf("chain[%d]: %w: %d", i, approval.ErrInvalidThreshold, level.Threshold)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format: unsupported %q", c.Log.Format)
	}
	return nil
}

// LoadConfig reads the YAML configuration at URL over DefaultConfig. A nil
// metaService uses the local/afs default.
func LoadConfig(ctx context.Context, metaService *meta.Service, URL string) (*Config, error) {
	if metaService == nil {
		metaService = meta.New(nil, "")
	}
	ret := DefaultConfig()
	if err := metaService.Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
