package adt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/wnxd/adtfmt/debugger"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxLength   = 16 << 20
	DefaultMaxChildren = 256
)

var ErrConfigInvalid = errors.New("config invalid")

//go:embed config.yaml
var defaultConfig []byte

type Config struct {
	String  StringConfig   `yaml:"string"`
	Vec     *VecConfig     `yaml:"vec"`
	Scripts []ScriptConfig `yaml:"scripts"`
}

type StringConfig struct {
	Types     []string `yaml:"types"`
	Data      string   `yaml:"data"`
	Size      string   `yaml:"size"`
	MaxLength uint64   `yaml:"max_length"`
}

// VecConfig binds the vector provider. A nil section or an empty pattern
// leaves vectors unformatted.
type VecConfig struct {
	Name        string         `yaml:"name"`
	Match       debugger.Match `yaml:"match"`
	Data        string         `yaml:"data"`
	Size        string         `yaml:"size"`
	MaxChildren int            `yaml:"max_children"`
	Summary     bool           `yaml:"summary"`
}

// ScriptConfig binds a Lua summary to matching types. Source takes
// precedence over File.
type ScriptConfig struct {
	Name   string         `yaml:"name"`
	Match  debugger.Match `yaml:"match"`
	Source string         `yaml:"source"`
	File   string         `yaml:"file"`
}

func DefaultConfig() *Config {
	cfg, err := ParseConfig(defaultConfig)
	if err != nil {
		panic(err)
	}
	return cfg
}

// ParseConfig overlays data on the built-in defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := new(Config)
	if err := yaml.Unmarshal(defaultConfig, cfg); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func (cfg *Config) Validate() error {
	var err error
	if len(cfg.String.Types) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: string.types is empty", ErrConfigInvalid))
	}
	for i, name := range cfg.String.Types {
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("%w: string.types[%d] is empty", ErrConfigInvalid, i))
		}
	}
	if cfg.String.Data == "" || cfg.String.Size == "" {
		err = multierr.Append(err, fmt.Errorf("%w: string field names are required", ErrConfigInvalid))
	}
	if cfg.vecEnabled() {
		if cfg.Vec.Data == "" || cfg.Vec.Size == "" {
			err = multierr.Append(err, fmt.Errorf("%w: vec field names are required", ErrConfigInvalid))
		}
		if cfg.Vec.MaxChildren < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: vec.max_children is negative", ErrConfigInvalid))
		}
	}
	for i, sc := range cfg.Scripts {
		if sc.Match.Pattern == "" {
			err = multierr.Append(err, fmt.Errorf("%w: scripts[%d].match.pattern is empty", ErrConfigInvalid, i))
		}
		if sc.Source == "" && sc.File == "" {
			err = multierr.Append(err, fmt.Errorf("%w: scripts[%d] needs source or file", ErrConfigInvalid, i))
		}
	}
	return err
}

func (cfg *Config) StringSummary() StringSummary {
	return StringSummary{
		DataField: cfg.String.Data,
		SizeField: cfg.String.Size,
		MaxLength: cfg.String.MaxLength,
	}
}

func (cfg *Config) VecLayout() VecLayout {
	if cfg.Vec == nil {
		return VecLayout{}
	}
	return VecLayout{
		DataField:   cfg.Vec.Data,
		SizeField:   cfg.Vec.Size,
		MaxChildren: cfg.Vec.MaxChildren,
	}
}

func (cfg *Config) vecEnabled() bool {
	return cfg.Vec != nil && cfg.Vec.Match.Pattern != ""
}

// label is the name printed when a vector binding is registered.
func (vc VecConfig) label() string {
	if vc.Name != "" {
		return vc.Name
	}
	return vc.Match.Pattern
}
