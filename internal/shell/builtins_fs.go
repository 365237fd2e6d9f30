package shell

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/reposh/internal/pathres"
	"github.com/vvka-141/reposh/internal/vfs"
)

var (
	errNoRemote  = errors.New("no remote repository configured")
	errNoBrowser = errors.New("no browser available")
)

func lsCommand(s *Session, args []string) Result {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	pos, err := pathres.ResolveDirectory(s.tree.Root(), s.pos, target)
	if err != nil {
		return Failure(KindResolution, "ls: "+err.Error())
	}
	if pos.Dir.State() == vfs.StateFailed && pos.Dir.Len() == 0 {
		return Failure(KindRemote, "ls: could not list "+pos.String())
	}
	return OK(strings.Join(pos.Dir.Names(), "\n"))
}

func cdCommand(s *Session, args []string) Result {
	if len(args) == 0 {
		s.setPosition(pathres.Root(s.tree.Root()))
		return OK("")
	}

	pos, err := pathres.ResolveDirectory(s.tree.Root(), s.pos, args[0])
	if err != nil {
		return Failure(KindResolution, "cd: "+err.Error())
	}
	s.setPosition(pos)
	return OK("")
}

func pwdCommand(s *Session, _ []string) Result {
	return OK(s.pos.String())
}

func catCommand(s *Session, args []string) Result {
	if len(args) == 0 {
		return usage(s, "cat")
	}
	target, err := pathres.ResolveFile(s.tree.Root(), s.pos, args[0])
	if err != nil {
		return Failure(KindResolution, "cat: "+err.Error())
	}
	return s.withContent(target, OK)
}

func openCommand(s *Session, args []string) Result {
	if len(args) == 0 {
		return usage(s, "open")
	}
	if s.locator == nil {
		return Failure(KindRemote, "open: "+errNoRemote.Error())
	}

	target := args[0]
	if !strings.HasPrefix(target, "/") {
		target = path.Join(s.pos.String(), target)
	}
	url := s.locator.BrowseURL(target)

	if s.opener == nil {
		return Failure(KindRemote, fmt.Sprintf("open: %v; visit %s", errNoBrowser, url))
	}
	if err := s.opener.Open(url); err != nil {
		s.logger.Error("Opening %s: %v", url, err)
	}
	return OK("Opening " + url)
}

// withContent hands a file's text to next: immediately when it is cached,
// otherwise after fetching it and caching it in the tree.
func (s *Session) withContent(target pathres.FileTarget, next func(text string) Result) Result {
	repoPath := target.RepoPath()

	switch n := target.Node.(type) {
	case vfs.Cached:
		return next(n.Content)
	case vfs.Placeholder:
		fetchFailed := func(err error) Result {
			return Failure(KindRemote, fmt.Sprintf("Error fetching %s: %v", repoPath, err))
		}
		if s.fetcher == nil {
			return fetchFailed(errNoRemote)
		}

		fetcher := s.fetcher
		return Pending(
			Defer("fetch "+repoPath, func(ctx context.Context) (string, error) {
				return fetcher.FetchText(ctx, repoPath)
			}).
				Then(func(text string) Result {
					target.Parent.Dir.Cache(target.Name, text)
					return next(text)
				}).
				Catch(fetchFailed),
		)
	default:
		return Failure(KindResolution, "Is a directory: "+repoPath)
	}
}
