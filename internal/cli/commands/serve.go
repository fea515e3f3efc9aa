package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/projectboard/internal/cli/config"
	"github.com/leapstack-labs/projectboard/internal/project"
	"github.com/leapstack-labs/projectboard/internal/ui"
	"github.com/leapstack-labs/projectboard/internal/ui/resources"
)

// NewServeCommand creates the serve command. Its flags are read through the
// config loader, so they share precedence rules with the config file and
// PROJECTBOARD_ environment variables.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the project board web UI",
		Long: `Start a local web server hosting the project board.

The board provides:
- A form to add projects (title, description, people)
- Live ACTIVE and FINISHED project lists, updated in every open browser`,
		Example: `  # Start on the default port
  projectboard serve

  # Start on a custom port with seeded projects
  projectboard serve --port 3000 --seed projects.yaml

  # Start without opening a browser
  projectboard serve --no-browser`,
		RunE: runServe,
	}

	cmd.Flags().Int("port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("dev", false, "Enable hot reload endpoints")
	cmd.Flags().Bool("watch", true, "Reload pages when static assets change (dev only)")
	cmd.Flags().String("static-dir", "", "Static asset directory to watch in dev mode")
	cmd.Flags().String("seed", "", "YAML file with projects to load at startup")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	uiCfg := cfg.GetUIConfig()

	store := project.NewStore()
	if cfg.SeedFile != "" {
		inputs, err := project.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed projects: %w", err)
		}
		store.Seed(inputs)
		logger.Info("seeded projects", "file", cfg.SeedFile, "count", len(inputs))
	}

	secret := uiCfg.SessionSecret
	if secret == "" {
		var err error
		if secret, err = generateSessionSecret(); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	watchDir := uiCfg.StaticDir
	if watchDir == config.DefaultStaticDir {
		watchDir = resources.Dir()
	}

	server := ui.NewServer(ui.Config{
		Store:         store,
		Port:          uiCfg.Port,
		Dev:           uiCfg.Dev,
		Watch:         uiCfg.Watch,
		WatchDir:      watchDir,
		SessionSecret: secret,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", uiCfg.Port)
	if uiCfg.AutoOpen {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting project board on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// generateSessionSecret returns a random per-process key. Sessions only carry
// short-lived flashes, so they do not need to survive a restart.
func generateSessionSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	cmd.Stdout = os.Stderr
	_ = cmd.Start()
}
