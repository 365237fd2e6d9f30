package shell

import (
	"github.com/google/uuid"

	"github.com/vvka-141/reposh/internal/history"
	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/internal/pathres"
	"github.com/vvka-141/reposh/internal/vfs"
	"github.com/vvka-141/reposh/pkg/reposh"
)

// Config carries a session's collaborators. Nil fields get defaults where
// one exists; commands whose capability is missing fail with a message.
type Config struct {
	Registry    *Registry
	Fetcher     reposh.Fetcher
	Locator     reposh.Locator
	Opener      reposh.Opener
	Interpreter reposh.Interpreter
	Sink        reposh.Sink
	Logger      reposh.Logger
}

// Session is one shell: a tree, a current position, history and the
// capabilities commands call out to. Not safe for concurrent use; see the
// package documentation.
type Session struct {
	id       uuid.UUID
	tree     *vfs.Tree
	pos      pathres.Position
	history  *history.History
	registry *Registry

	fetcher     reposh.Fetcher
	locator     reposh.Locator
	opener      reposh.Opener
	interpreter reposh.Interpreter
	sink        reposh.Sink
	logger      reposh.Logger

	scriptDepth int
	exited      bool
}

// NewSession starts a session at the root of tree.
func NewSession(tree *vfs.Tree, cfg Config) *Session {
	if cfg.Registry == nil {
		cfg.Registry = Builtins()
	}
	if cfg.Sink == nil {
		cfg.Sink = output.NewBuffer(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNullLogger()
	}

	return &Session{
		id:          uuid.New(),
		tree:        tree,
		pos:         pathres.Root(tree.Root()),
		history:     history.New(),
		registry:    cfg.Registry,
		fetcher:     cfg.Fetcher,
		locator:     cfg.Locator,
		opener:      cfg.Opener,
		interpreter: cfg.Interpreter,
		sink:        cfg.Sink,
		logger:      cfg.Logger,
	}
}

// ID identifies the session in log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// Tree returns the session's filesystem.
func (s *Session) Tree() *vfs.Tree { return s.tree }

// Position returns the current directory and its path.
func (s *Session) Position() pathres.Position { return s.pos }

// History returns the session's history.
func (s *Session) History() *history.History { return s.history }

// Registry returns the commands this session dispatches to.
func (s *Session) Registry() *Registry { return s.registry }

// Sink returns where output goes.
func (s *Session) Sink() reposh.Sink { return s.sink }

// Exited reports whether `exit` has run.
func (s *Session) Exited() bool { return s.exited }

// Logger returns the session logger.
func (s *Session) Logger() reposh.Logger { return s.logger }

// Prompt renders the prompt for the current position, e.g. "/docs $".
func (s *Session) Prompt() string {
	return s.pos.String() + " " + reposh.Prompt
}

func (s *Session) setPosition(pos pathres.Position) {
	s.pos = pos
}

func (s *Session) print(text string) {
	s.sink.AppendLine(text)
}
