package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/reposh/internal/config"
	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/pkg/reposh"
)

type execFlagValues struct {
	file   string
	strict bool
}

var execFlags execFlagValues

var execCmd = &cobra.Command{
	Use:   "exec [command line]",
	Short: "Run commands without the interactive shell",
	Long: `Run one command line, or every line of a local script file, against the
repository and exit once all output (including fetched files) is printed.

The whole tree is listed before the first command runs. Each line is
echoed with a "$ " prefix like in the shell.

Examples:
  reposh exec --repo golang/go ls src
  reposh exec --repo golang/go cat README.md
  reposh exec --offline --file tour.txt`,
	Args: func(cmd *cobra.Command, args []string) error {
		if execFlags.file != "" && len(args) > 0 {
			return fmt.Errorf("invalid argument: give either a command line or --file, not both")
		}
		if execFlags.file == "" && len(args) == 0 {
			return fmt.Errorf("invalid argument: a command line or --file is required")
		}
		return nil
	},
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVarP(&execFlags.file, "file", "f", "", "Local file with one command line per line")
	execCmd.Flags().BoolVar(&execFlags.strict, "strict", false, "Fail instead of using the built-in tree when the repository cannot be listed")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	_ = godotenv.Load()

	cfg, err := resolveConfig(sessFlags, os.Getenv)
	if err != nil {
		return err
	}

	input, err := execInput(execFlags.file, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, cfg, input, os.Stdout, sessionOptions{
		offline: sessFlags.offline,
		token:   os.Getenv("GITHUB_TOKEN"),
		logger:  logging.NewConsoleLogger(verbose),
	}, execFlags.strict)
}

func execInput(file string, args []string) (io.Reader, error) {
	if file == "" {
		return strings.NewReader(strings.Join(args, " ")), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reposh.ErrScriptFailed, err)
	}
	return bytes.NewReader(data), nil
}

// execute waits for the full tree, then feeds input through a session writing to out.
func execute(ctx context.Context, cfg *config.Config, input io.Reader, out io.Writer, opts sessionOptions, strict bool) error {
	opts.sink = output.NewWriterSink(out)
	session, title := openSession(ctx, cfg, opts)

	if err := session.Tree().Wait(ctx); err != nil {
		return err
	}
	if strict && session.Tree().Offline() && !opts.offline && cfg.HasRepository() {
		return fmt.Errorf("%w: could not list %s", reposh.ErrRemoteUnavailable, title)
	}

	if err := feedLines(ctx, session, input); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running commands: %w", err)
	}
	return nil
}
