package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	prev := log.Logger
	defer func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}()

	t.Run("unknown level falls back to info", func(t *testing.T) {
		closer, err := Init("chatty", "")
		require.NoError(t, err)
		require.NoError(t, closer.Close())
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("logs are copied to the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bot.log")
		closer, err := Init("debug", path)
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

		log.Info().Int("turn", 7).Msg("turn decided")
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "turn decided")
	})

	t.Run("unwritable file", func(t *testing.T) {
		_, err := Init("info", filepath.Join(t.TempDir(), "missing", "bot.log"))
		require.Error(t, err)
	})
}
