package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/reposh/internal/config"
	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/remote/mockrepo"
	"github.com/vvka-141/reposh/pkg/reposh"
)

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func mockConfig(srv *mockrepo.Server) *config.Config {
	cfg := config.Default()
	cfg.Repository = config.RepositoryConfig{Owner: mockrepo.Owner, Name: mockrepo.Repo, Branch: mockrepo.Branch}
	cfg.Endpoints = config.EndpointsConfig{API: srv.URL, Raw: srv.RawURL(), Web: "https://web.test"}
	cfg.Retry = config.RetryConfig{MaxAttempts: 1, InitialDelay: "1ms", MaxDelay: "1ms"}
	return cfg
}

func mockOptions(srv *mockrepo.Server, opener reposh.Opener) sessionOptions {
	return sessionOptions{
		httpClient: srv.Client(),
		opener:     opener,
		logger:     logging.NewNullLogger(),
	}
}

func TestExecute_RemoteRepository(t *testing.T) {
	srv := mockrepo.New(
		mockrepo.WithFile("README.md", "# Demo"),
		mockrepo.WithFile("docs/guide.md", "step one\nstep two"),
		mockrepo.WithFile("run.sh", "cd docs\ncat guide.md"),
	)
	defer srv.Close()

	opener := &recordingOpener{}
	var out strings.Builder
	input := strings.NewReader("ls\ncat README.md\nbash run.sh\npwd\nopen guide.md\n")

	if err := execute(context.Background(), mockConfig(srv), input, &out, mockOptions(srv, opener), true); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got := out.String()
	for _, want := range []string{"README.md\n", "docs\n", "# Demo\n", "step one\nstep two\n", "$ pwd\n/docs\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if len(opener.urls) != 1 || opener.urls[0] != "https://web.test/octo/demo/blob/main/docs/guide.md" {
		t.Errorf("opened %v", opener.urls)
	}
}

func TestExecute_FetchFailure(t *testing.T) {
	srv := mockrepo.New(
		mockrepo.WithFile("broken.txt", "never"),
		mockrepo.WithFailure("broken.txt", http.StatusNotFound),
	)
	defer srv.Close()

	var out strings.Builder
	if err := execute(context.Background(), mockConfig(srv), strings.NewReader("cat broken.txt\n"), &out, mockOptions(srv, &recordingOpener{}), false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Error fetching broken.txt:") {
		t.Errorf("expected fetch error in output:\n%s", out.String())
	}
}

func TestExecute_StrictFailsWhenRootUnavailable(t *testing.T) {
	srv := mockrepo.New(mockrepo.WithFailure("", http.StatusNotFound))
	defer srv.Close()

	var out strings.Builder
	err := execute(context.Background(), mockConfig(srv), strings.NewReader("ls\n"), &out, mockOptions(srv, &recordingOpener{}), true)
	if !errors.Is(err, reposh.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("no command should run, got:\n%s", out.String())
	}
}

func TestExecute_LenientFallsBack(t *testing.T) {
	srv := mockrepo.New(mockrepo.WithFailure("", http.StatusNotFound))
	defer srv.Close()

	var out strings.Builder
	if err := execute(context.Background(), mockConfig(srv), strings.NewReader("ls\n"), &out, mockOptions(srv, &recordingOpener{}), false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "notes.txt") {
		t.Errorf("expected built-in tree listing:\n%s", out.String())
	}
}

func TestExecInput(t *testing.T) {
	r, err := execInput("", []string{"cat", "README.md"})
	if err != nil {
		t.Fatalf("execInput: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "cat README.md" {
		t.Errorf("got %q", data)
	}

	_, err = execInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	if !errors.Is(err, reposh.ErrScriptFailed) {
		t.Errorf("expected ErrScriptFailed, got %v", err)
	}
	if got := reposh.ExitCodeForError(err); got != reposh.ExitScriptFailed {
		t.Errorf("exit code = %d, want %d", got, reposh.ExitScriptFailed)
	}

	script := filepath.Join(t.TempDir(), "tour.txt")
	if err := os.WriteFile(script, []byte("ls\npwd\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execInput(script, nil); err != nil {
		t.Errorf("execInput(file): %v", err)
	}
}
