package remote

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/vvka-141/reposh/pkg/reposh"
)

// CoalescingFetcher collapses concurrent fetches of one path into a single
// request to the wrapped fetcher. Nothing is cached; the VFS holds content.
type CoalescingFetcher struct {
	fetcher reposh.Fetcher
	sf      singleflight.Group
}

// NewCoalescingFetcher wraps f.
func NewCoalescingFetcher(f reposh.Fetcher) *CoalescingFetcher {
	return &CoalescingFetcher{fetcher: f}
}

// FetchText fetches path, sharing the result with concurrent callers.
// The first caller's context governs the shared request.
func (c *CoalescingFetcher) FetchText(ctx context.Context, path string) (string, error) {
	v, err, _ := c.sf.Do(path, func() (interface{}, error) {
		return c.fetcher.FetchText(ctx, path)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
