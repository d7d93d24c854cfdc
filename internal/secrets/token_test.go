package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIFYToken_EnvWins(t *testing.T) {
	t.Setenv(TokenEnv, "env-token")

	tok, err := APIFYToken(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "env-token", tok)
}

func TestAPIFYToken_EnvFileFallback(t *testing.T) {
	t.Setenv(TokenEnv, "")

	dir := t.TempDir()
	line := TokenEnv + "=file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(line), 0o600))

	tok, err := APIFYToken(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-token", tok)
}
