package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nocairip/rip/pkg/rip/model"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultConfigAt(t *testing.T) {
	t.Run("Config is being created if missing", func(t *testing.T) {
		tmpDir := t.TempDir()

		err := model.EnsureDefaultConfigAt(tmpDir, false)

		require.NoError(t, err)
		configFile := filepath.Join(tmpDir, "nocairip", "config.yml")
		_, err = os.Stat(configFile)
		require.NoError(t, err)
	})

	t.Run("Existing config is left alone without overwrite", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, model.EnsureDefaultConfigAt(tmpDir, false))

		configFile := filepath.Join(tmpDir, "nocairip", "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("version: custom\n"), 0644))

		require.NoError(t, model.EnsureDefaultConfigAt(tmpDir, false))

		conf, err := model.LoadConfiguration(configFile)
		require.NoError(t, err)
		require.Equal(t, "custom", conf.Version)
	})
}

func TestLoadConfigurationRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	conf := model.NewDefaultConfiguration()
	conf.DefaultXDPI = 1200
	conf.DefaultYDPI = 1200
	path := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, conf.Save(path))

	loaded, err := model.LoadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, 1200, loaded.DefaultXDPI)
	require.Equal(t, 1200, loaded.DefaultYDPI)
}
