package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/projectboard/internal/cli/commands"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "check", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "projectboard v"+Version)
}

func TestRootCmd_Check(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name: "valid",
			args: []string{"check", "--title", "Build API", "--description", "Create REST endpoints", "--people", "3"},
		},
		{
			name:    "invalid",
			args:    []string{"check", "--title", "Build API", "--description", "hi", "--people", "3"},
			wantErr: commands.ErrInvalidInputs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRootCmd_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projectboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  port: 70000\n"), 0o600))

	_, err := execute(t, "--config", path, "version")
	require.Error(t, err)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "projectboard")
		})
	}
}

func TestCompletionCommand_InvalidShell(t *testing.T) {
	_, err := execute(t, "completion", "tcsh")
	require.Error(t, err)
}
