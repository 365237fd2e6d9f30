package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/reposh/internal/config"
	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/luarun"
	"github.com/vvka-141/reposh/internal/remote"
	"github.com/vvka-141/reposh/internal/retry"
	"github.com/vvka-141/reposh/internal/shell"
	"github.com/vvka-141/reposh/internal/vfs"
	"github.com/vvka-141/reposh/pkg/reposh"
)

// sessionFlags holds the flags shared by every command that opens a session.
type sessionFlags struct {
	repo       string
	branch     string
	configPath string
	offline    bool
	wait       bool
}

var sessFlags sessionFlags

func addSessionFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&sessFlags.repo, "repo", "", "Repository to browse, as owner/name")
	flags.StringVar(&sessFlags.branch, "branch", "", "Branch to browse (default main)")
	flags.StringVar(&sessFlags.configPath, "config", "", "Path to reposh.yaml (default ./reposh.yaml if present)")
	flags.BoolVar(&sessFlags.offline, "offline", false, "Use the built-in tree and never touch the network")
	flags.BoolVar(&sessFlags.wait, "wait", false, "Wait for the whole tree before reading commands (non-interactive mode)")
}

// resolveConfig merges defaults, reposh.yaml, environment and flags, in
// increasing priority.
func resolveConfig(flags sessionFlags, getenv func(string) string) (*config.Config, error) {
	cfg := config.Default()

	fileCfg, err := loadConfigFile(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Merge(fileCfg)

	if repo := getenv("REPOSH_REPO"); repo != "" {
		if err := cfg.SetRepository(repo); err != nil {
			return nil, fmt.Errorf("REPOSH_REPO: %w", err)
		}
	}
	if branch := getenv("REPOSH_BRANCH"); branch != "" {
		cfg.Repository.Branch = branch
	}

	if flags.repo != "" {
		if err := cfg.SetRepository(flags.repo); err != nil {
			return nil, fmt.Errorf("--repo: %w", err)
		}
	}
	if flags.branch != "" {
		cfg.Repository.Branch = flags.branch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile reads an explicit config path, or ./reposh.yaml when it exists.
func loadConfigFile(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %v: %w", path, err, reposh.ErrInvalidConfig)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %v: %w", config.ConfigFileName, err, reposh.ErrInvalidConfig)
	}
	return cfg, nil
}

// sessionOptions carries what openSession needs beyond the config.
type sessionOptions struct {
	offline    bool
	token      string
	httpClient *http.Client
	opener     reposh.Opener
	sink       reposh.Sink
	logger     reposh.Logger
}

// openSession starts populating the tree and returns a session over it,
// plus a title naming what is being browsed.
func openSession(ctx context.Context, cfg *config.Config, opts sessionOptions) (*shell.Session, string) {
	if opts.logger == nil {
		opts.logger = logging.NewNullLogger()
	}
	session, title := newSession(ctx, cfg, opts)
	opts.logger.Verbose("Session %s started on %s", session.ID(), title)
	return session, title
}

func newSession(ctx context.Context, cfg *config.Config, opts sessionOptions) (*shell.Session, string) {
	interpreter := luarun.New(config.Duration(cfg.Lua.Timeout, reposh.DefaultInterpreterTimeout))

	if opts.offline || !cfg.HasRepository() {
		opts.logger.Verbose("Using the built-in tree")
		return shell.NewSession(vfs.NewFallbackTree(), shell.Config{
			Interpreter: interpreter,
			Sink:        opts.sink,
			Logger:      opts.logger,
		}), "built-in tree"
	}

	if opts.httpClient == nil {
		opts.httpClient = &http.Client{Timeout: config.Duration(cfg.Timeout, reposh.DefaultHTTPTimeout)}
	}
	if opts.opener == nil {
		opts.opener = remote.NewBrowserOpener()
	}

	logger := opts.logger
	retrier := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(cfg.Retry.MaxAttempts,
			retry.WithInitialDelay(config.Duration(cfg.Retry.InitialDelay, reposh.DefaultRetryInitialDelay)),
			retry.WithMaxDelay(config.Duration(cfg.Retry.MaxDelay, reposh.DefaultRetryMaxDelay)),
		),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Retry %d in %s: %v", attempt, delay, err)
	})

	client := remote.NewClient(remote.Options{
		Owner:      cfg.Repository.Owner,
		Name:       cfg.Repository.Name,
		Branch:     cfg.Repository.Branch,
		APIURL:     cfg.Endpoints.API,
		RawURL:     cfg.Endpoints.Raw,
		WebURL:     cfg.Endpoints.Web,
		Token:      opts.token,
		HTTPClient: opts.httpClient,
		Retry:      retrier,
		Logger:     opts.logger,
	})

	opts.logger.Verbose("Listing %s@%s", client.Slug(), cfg.Repository.Branch)
	tree := vfs.Populate(ctx, client, client.RootURL(), opts.logger)

	return shell.NewSession(tree, shell.Config{
		Fetcher:     remote.NewCoalescingFetcher(client),
		Locator:     client,
		Opener:      opts.opener,
		Interpreter: interpreter,
		Sink:        opts.sink,
		Logger:      opts.logger,
	}), client.Slug() + "@" + cfg.Repository.Branch
}

// feedLines runs every line of in as if typed, waiting for each line's
// deferred output before reading the next. Blank and '#' lines are skipped.
// It stops early when the session exits.
func feedLines(ctx context.Context, session *shell.Session, in io.Reader) error {
	loop := shell.NewLoop(ctx, session)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		loop.Submit(line)
		if err := loop.Drain(ctx); err != nil {
			return err
		}
		if session.Exited() {
			return nil
		}
	}
	return scanner.Err()
}
