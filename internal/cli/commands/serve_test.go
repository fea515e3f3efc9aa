package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/projectboard/internal/cli/config"
	"github.com/leapstack-labs/projectboard/internal/testutil"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func serveContext(t *testing.T, cfg *config.Config) context.Context {
	t.Helper()
	ctx := config.WithConfig(context.Background(), cfg)
	return config.WithLogger(ctx, testutil.NewTestLogger(t))
}

func TestServeCommand_Flags(t *testing.T) {
	cmd := NewServeCommand()

	for _, name := range []string{"port", "no-browser", "dev", "watch", "static-dir", "seed"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestServeCommand_MissingSeedFile(t *testing.T) {
	cfg := &config.Config{
		SeedFile: filepath.Join(t.TempDir(), "missing.yaml"),
		UI:       &config.UIConfig{Port: freePort(t)},
	}

	cmd := NewServeCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(serveContext(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load seed projects")
}

func TestServeCommand_InvalidSeed(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(`projects:
  - title: Build API
    description: hi
    people: "3"
`), 0o600))

	cfg := &config.Config{SeedFile: seed, UI: &config.UIConfig{Port: freePort(t)}}

	cmd := NewServeCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(serveContext(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid inputs")
}

func TestServeCommand_ServesSeededBoard(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(`projects:
  - title: Build API
    description: Create REST endpoints
    people: "3"
`), 0o600))

	port := freePort(t)
	cfg := &config.Config{SeedFile: seed, UI: &config.UIConfig{Port: port}}

	ctx, cancel := context.WithCancel(serveContext(t, cfg))
	defer cancel()

	cmd := NewServeCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/", port)
	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, body, "Build API")
	assert.Contains(t, body, "ACTIVE PROJECTS")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
	assert.Contains(t, out.String(), fmt.Sprintf("http://localhost:%d", port))
}

func TestGenerateSessionSecret(t *testing.T) {
	a, err := generateSessionSecret()
	require.NoError(t, err)
	b, err := generateSessionSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
