package config

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildValidArgs(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep", "foo", "bar"}), false)
	require.NoError(t, err)
	assert.Equal(t, Config{Query: "foo", SourceName: "bar", CaseSensitive: true}, cfg)
}

func TestBuildIgnoreCase(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep", "foo", "bar"}), true)
	require.NoError(t, err)
	assert.False(t, cfg.CaseSensitive)
}

func TestBuildMissingQuery(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep"}), false)
	require.ErrorIs(t, err, ErrMissingQuery)
	assert.Equal(t, Config{}, cfg)

	_, err = Build(slices.Values([]string{}), false)
	require.ErrorIs(t, err, ErrMissingQuery)
}

func TestBuildMissingSource(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep", "foo"}), false)
	require.ErrorIs(t, err, ErrMissingSource)
	assert.Equal(t, Config{}, cfg)
}

func TestBuildEmptyQueryIsAllowed(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep", "", "poem.txt"}), false)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Query)
	assert.Equal(t, "poem.txt", cfg.SourceName)
}

func TestBuildStopsAfterSource(t *testing.T) {
	pulled := 0
	args := func(yield func(string) bool) {
		for {
			pulled++
			if !yield("x") {
				return
			}
		}
	}

	cfg, err := Build(args, false)
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Query)
	assert.Equal(t, 3, pulled)
}

func TestBuildIgnoresExtraArgs(t *testing.T) {
	cfg, err := Build(slices.Values([]string{"minigrep", "foo", "bar", "baz", "qux"}), false)
	require.NoError(t, err)
	assert.Equal(t, "bar", cfg.SourceName)
}

func TestIgnoreCaseFromEnv(t *testing.T) {
	t.Setenv(IgnoreCaseEnv, "")
	assert.True(t, IgnoreCaseFromEnv(), "empty value still counts as present")
}
