package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"migrate", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	migrate, _, _ := root.Find([]string{"migrate"})
	assert.NotNil(t, migrate.Flags().Lookup("status"))

	seedCmd, _, _ := root.Find([]string{"seed"})
	assert.NotNil(t, seedCmd.Flags().Lookup("file"))
	assert.NotNil(t, seedCmd.Flags().Lookup("reset"))
}

func TestRootCmd_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestSeed_InvalidFileFailsBeforeConnecting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hospitals:\n  - name: A\n    district: atlantis\n"), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"seed", "--file", path, "--dsn", "postgres://unused"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlantis")
}

func TestLoadSeed_Default(t *testing.T) {
	hs, err := loadSeed("")
	require.NoError(t, err)
	assert.Len(t, hs, 10)
}
