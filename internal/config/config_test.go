package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqgo/domain/core"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.GSA.RunSobol)
	assert.True(t, cfg.GSA.RunMorris)
	assert.Equal(t, 100000, cfg.GSA.NSampSobol)
	assert.Equal(t, 4, cfg.GSA.NSampMorris)
	assert.Equal(t, 4, cfg.GSA.LMorris)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UQ_RUN_SOBOL", "false")
	t.Setenv("UQ_N_SAMP_MORRIS", "12")
	t.Setenv("UQ_L_MORRIS", "6")
	t.Setenv("UQ_SEED", "42")
	t.Setenv("UQ_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.GSA.RunSobol)
	assert.Equal(t, 12, cfg.GSA.NSampMorris)
	assert.Equal(t, 6, cfg.GSA.LMorris)
	assert.Equal(t, uint64(42), cfg.GSA.Seed)
	assert.Equal(t, 8, cfg.GSA.Workers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("malformed integer", func(t *testing.T) {
		t.Setenv("UQ_N_SAMP_SOBOL", "lots")
		_, err := Load()
		assert.True(t, core.IsConfigurationError(err))
	})

	t.Run("odd morris levels", func(t *testing.T) {
		t.Setenv("UQ_L_MORRIS", "5")
		_, err := Load()
		assert.True(t, core.IsConfigurationError(err))
	})

	t.Run("negative seed", func(t *testing.T) {
		t.Setenv("UQ_SEED", "-1")
		_, err := Load()
		assert.True(t, core.IsConfigurationError(err))
	})
}
