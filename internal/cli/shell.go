package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/reposh/internal/config"
	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/internal/shell"
	"github.com/vvka-141/reposh/internal/tui"
	"github.com/vvka-141/reposh/pkg/reposh"
)

// debugLogFile receives verbose logs while the full-screen shell owns the terminal.
const debugLogFile = "reposh-debug.log"

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell (default)",
	Long: `Start a shell over the configured repository.

On a terminal this is a full-screen shell with history (↑/↓), path
completion (tab) and scrollback (pgup/pgdn). Otherwise command lines are
read from stdin, one per line, and output goes to stdout.

Examples:
  reposh --repo golang/go
  echo "ls src" | reposh shell --repo golang/go --wait`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)
	_ = godotenv.Load()

	cfg, err := resolveConfig(sessFlags, os.Getenv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if tui.IsInteractive() {
		return runInteractive(ctx, cfg, verbose)
	}

	session, _ := openSession(ctx, cfg, sessionOptions{
		offline: sessFlags.offline,
		token:   os.Getenv("GITHUB_TOKEN"),
		sink:    output.NewWriterSink(os.Stdout),
		logger:  logging.NewConsoleLogger(verbose),
	})
	return runLines(ctx, session, os.Stdin, sessFlags.wait)
}

// runLines feeds in to session, optionally after the whole tree is listed.
// An interrupt ends the run quietly.
func runLines(ctx context.Context, session *shell.Session, in io.Reader, wait bool) error {
	if wait {
		if err := session.Tree().Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("waiting for the repository tree: %w", err)
		}
	}

	if err := feedLines(ctx, session, in); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

func runInteractive(ctx context.Context, cfg *config.Config, verbose bool) error {
	var logger reposh.Logger = logging.NewNullLogger()
	if verbose {
		f, err := tea.LogToFile(debugLogFile, "reposh")
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", debugLogFile, err)
		}
		defer f.Close()
		logger = logging.NewWriterLogger(f, true)
	}

	buffer := output.NewBuffer(0)
	session, title := openSession(ctx, cfg, sessionOptions{
		offline: sessFlags.offline,
		token:   os.Getenv("GITHUB_TOKEN"),
		sink:    buffer,
		logger:  logger,
	})
	return tui.Run(ctx, session, buffer, title)
}
