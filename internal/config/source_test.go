package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViperSource(t *testing.T) {
	v := viper.New()
	v.Set("provision.tenant_id", "tenant-1")
	v.Set("provision.notify_address", "")

	src := NewViper(v, "provision")

	value, err := src.Get("tenant_id")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", value)

	_, err = src.Get("credential_ref")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Set-but-empty behaves like absent: the workflow must not treat an
	// empty tenant as usable.
	_, err = src.Get("notify_address")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestViperSourceWithoutPrefix(t *testing.T) {
	v := viper.New()
	v.Set("tenant_id", "tenant-1")

	src := NewViper(v, "")
	value, err := src.Get("tenant_id")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", value)
}

func TestStaticSource(t *testing.T) {
	src := Static{"tenant_id": "tenant-1"}

	value, err := src.Get("tenant_id")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", value)

	_, err = src.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
