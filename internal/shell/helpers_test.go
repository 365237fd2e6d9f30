package shell

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/internal/vfs"
	"github.com/vvka-141/reposh/pkg/reposh"
)

type fakeFetcher struct {
	mu      sync.Mutex
	content map[string]string
	errs    map[string]error
	gate    chan struct{}
	calls   []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{content: make(map[string]string), errs: make(map[string]error)}
}

func (f *fakeFetcher) FetchText(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	gate := f.gate
	text, err := f.content[path], f.errs[path]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return text, err
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (o *fakeOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

type fakeLocator struct{}

func (fakeLocator) BrowseURL(path string) string {
	return "https://example.test/blob/main/" + strings.TrimPrefix(path, "/")
}

type fakeInterpreter struct {
	mu      sync.Mutex
	result  reposh.InterpreterResult
	sources []string
}

func (i *fakeInterpreter) Run(_ context.Context, source string) reposh.InterpreterResult {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sources = append(i.sources, source)
	return i.result
}

type harness struct {
	session     *Session
	out         *output.Buffer
	fetcher     *fakeFetcher
	opener      *fakeOpener
	interpreter *fakeInterpreter
	loop        *Loop
}

// sampleTree builds:
//
//	/README.md       placeholder
//	/docs/guide.md   placeholder
//	/docs/api/ref.md cached "reference"
//	/script.sh       cached "ls\nnope\n"
//	/hello.lua       placeholder
//	/src/
func sampleTree(t *testing.T) *vfs.Tree {
	t.Helper()
	root := vfs.NewDirectory()
	docs := vfs.NewDirectory()
	api := vfs.NewDirectory()
	require.True(t, api.Insert("ref.md", vfs.Cached{Content: "reference"}))
	require.True(t, docs.Insert("guide.md", vfs.Placeholder{}))
	require.True(t, docs.Insert("api", api))
	require.True(t, root.Insert("README.md", vfs.Placeholder{}))
	require.True(t, root.Insert("docs", docs))
	require.True(t, root.Insert("script.sh", vfs.Cached{Content: "ls\nnope\n"}))
	require.True(t, root.Insert("hello.lua", vfs.Placeholder{}))
	require.True(t, root.Insert("src", vfs.NewDirectory()))
	return vfs.NewTree(root)
}

func newHarness(t *testing.T, tree *vfs.Tree) *harness {
	t.Helper()
	h := &harness{
		out:         output.NewBuffer(0),
		fetcher:     newFakeFetcher(),
		opener:      &fakeOpener{},
		interpreter: &fakeInterpreter{},
	}
	h.session = NewSession(tree, Config{
		Fetcher:     h.fetcher,
		Locator:     fakeLocator{},
		Opener:      h.opener,
		Interpreter: h.interpreter,
		Sink:        h.out,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h.loop = NewLoop(ctx, h.session)
	return h
}

// run submits each line and waits for all deferred output.
func (h *harness) run(t *testing.T, lines ...string) []string {
	t.Helper()
	for _, line := range lines {
		h.loop.Submit(line)
	}
	h.drain(t)
	return h.out.Lines()
}

func (h *harness) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.loop.Drain(ctx))
}
