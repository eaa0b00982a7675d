package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	limit int
	name  string
	calls []string
}

func withLimit(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n <= 0 {
			return errors.New("limit must be positive")
		}
		c.limit = n
		c.calls = append(c.calls, "limit")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withLimit(3), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 3, cfg.limit)
		require.Equal(t, "b", cfg.name)
		require.Equal(t, []string{"name", "limit", "name"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withLimit(0), withName("never"))
		require.Error(t, err)
		require.Empty(t, cfg.name)
		require.Empty(t, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withName("x")))
		require.Equal(t, "x", cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{limit: 7}
		require.NoError(t, Apply[*testConfig](cfg))
		require.Equal(t, 7, cfg.limit)
	})
}
