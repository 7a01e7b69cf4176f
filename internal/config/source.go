// Package config provides ConfigSource implementations for the provisioning
// workflow: a viper-backed source for deployments and a static map for tests.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var ErrKeyNotFound = errors.New("configuration key not found")

// Viper resolves workflow configuration keys from a viper instance,
// optionally under a key prefix (e.g. "provision").
type Viper struct {
	v      *viper.Viper
	prefix string
}

func NewViper(v *viper.Viper, prefix string) *Viper {
	return &Viper{v: v, prefix: prefix}
}

func (c *Viper) Get(key string) (string, error) {
	full := key
	if c.prefix != "" {
		full = c.prefix + "." + key
	}
	if !c.v.IsSet(full) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, full)
	}
	value := c.v.GetString(full)
	if value == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrKeyNotFound, full)
	}
	return value, nil
}

// Static is a fixed key-value source, mainly for tests and one-off CLI runs.
type Static map[string]string

func (s Static) Get(key string) (string, error) {
	value, ok := s[key]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}
