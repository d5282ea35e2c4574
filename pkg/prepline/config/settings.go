// Package config provides typed settings lookup and loaders for the file
// resources the pipeline consumes (synonym maps, stopword lists).
package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/textkit/prepline/pkg/prepline/internalerr"
)

// Settings is the capability the pipeline needs from its configuration
// source: typed lookup by key and section. Every accessor fails when the
// key is absent or the value does not parse as the requested type.
type Settings interface {
	GetString(key, section string) (string, error)
	GetInt(key, section string) (int, error)
	GetFloat(key, section string) (float64, error)
	GetBool(key, section string) (bool, error)
}

// Provider is a viper-backed Settings implementation. Sections map to
// top-level groups of the config file, keys to entries within them.
type Provider struct {
	v *viper.Viper
}

// Open reads a configuration file and returns a Provider. Unreadable or
// unparsable files fail immediately.
func Open(path string) (*Provider, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return &Provider{v: v}, nil
}

func (p *Provider) lookup(key, section string) (string, error) {
	full := section + "." + key
	if !p.v.IsSet(full) {
		return "", fmt.Errorf("setting %s: %w", full, internalerr.ErrInvalidConfig)
	}
	return p.v.GetString(full), nil
}

// GetString returns a string setting.
func (p *Provider) GetString(key, section string) (string, error) {
	return p.lookup(key, section)
}

// GetInt returns an integer setting.
func (p *Provider) GetInt(key, section string) (int, error) {
	raw, err := p.lookup(key, section)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %s.%s: %q is not an integer: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return n, nil
}

// GetFloat returns a floating-point setting.
func (p *Provider) GetFloat(key, section string) (float64, error) {
	raw, err := p.lookup(key, section)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s.%s: %q is not a number: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return f, nil
}

// GetBool returns a boolean setting.
func (p *Provider) GetBool(key, section string) (bool, error) {
	raw, err := p.lookup(key, section)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("setting %s.%s: %q is not a boolean: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return b, nil
}

// Static is a map-backed Settings implementation for tests and embedding:
// section → key → raw string value.
type Static map[string]map[string]string

func (s Static) lookup(key, section string) (string, error) {
	sec, ok := s[section]
	if !ok {
		return "", fmt.Errorf("setting section %s: %w", section, internalerr.ErrInvalidConfig)
	}
	raw, ok := sec[key]
	if !ok {
		return "", fmt.Errorf("setting %s.%s: %w", section, key, internalerr.ErrInvalidConfig)
	}
	return raw, nil
}

// GetString returns a string setting.
func (s Static) GetString(key, section string) (string, error) {
	return s.lookup(key, section)
}

// GetInt returns an integer setting.
func (s Static) GetInt(key, section string) (int, error) {
	raw, err := s.lookup(key, section)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %s.%s: %q is not an integer: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return n, nil
}

// GetFloat returns a floating-point setting.
func (s Static) GetFloat(key, section string) (float64, error) {
	raw, err := s.lookup(key, section)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s.%s: %q is not a number: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return f, nil
}

// GetBool returns a boolean setting.
func (s Static) GetBool(key, section string) (bool, error) {
	raw, err := s.lookup(key, section)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("setting %s.%s: %q is not a boolean: %w", section, key, raw, internalerr.ErrInvalidConfig)
	}
	return b, nil
}
