package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vvka-141/reposh/internal/logging"
	"github.com/vvka-141/reposh/internal/retry"
	"github.com/vvka-141/reposh/pkg/reposh"
)

const (
	maxContentBytes = 8 << 20
	maxErrorBody    = 512
	userAgent       = "reposh"
)

// Options configures a Client. Empty endpoints fall back to GitHub's.
type Options struct {
	Owner  string
	Name   string
	Branch string

	APIURL string
	RawURL string
	WebURL string

	// Token, when set, is sent as a bearer token on every request.
	Token string

	HTTPClient *http.Client

	// Retry is used as given; only the default executor logs its retries.
	Retry  *retry.Executor
	Logger reposh.Logger
}

// Client is a read-only view of one branch of one repository.
type Client struct {
	owner, name, branch string
	apiURL, rawURL      string
	webURL              string
	token               string
	http                *http.Client
	retry               *retry.Executor
	logger              reposh.Logger
}

// NewClient creates a client. It does not touch the network.
func NewClient(opts Options) *Client {
	if opts.Branch == "" {
		opts.Branch = reposh.DefaultBranch
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: reposh.DefaultHTTPTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	if opts.Retry == nil {
		logger := opts.Logger
		opts.Retry = retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(reposh.DefaultRetryMaxAttempts,
				retry.WithInitialDelay(reposh.DefaultRetryInitialDelay),
				retry.WithMaxDelay(reposh.DefaultRetryMaxDelay),
			),
		).WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Retrying in %v (attempt %d): %v", delay, attempt+1, err)
		})
	}

	c := &Client{
		owner:  opts.Owner,
		name:   opts.Name,
		branch: opts.Branch,
		apiURL: strings.TrimRight(orDefault(opts.APIURL, reposh.DefaultAPIURL), "/"),
		rawURL: strings.TrimRight(orDefault(opts.RawURL, reposh.DefaultRawURL), "/"),
		webURL: strings.TrimRight(orDefault(opts.WebURL, reposh.DefaultWebURL), "/"),
		token:  opts.Token,
		http:   opts.HTTPClient,
		logger: opts.Logger,
	}
	c.retry = opts.Retry
	return c
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Slug returns "owner/name".
func (c *Client) Slug() string {
	return c.owner + "/" + c.name
}

// RootURL is the listing URL of the repository root.
func (c *Client) RootURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents?ref=%s",
		c.apiURL, url.PathEscape(c.owner), url.PathEscape(c.name), url.QueryEscape(c.branch))
}

type contentItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// List returns the entries of the directory behind a contents API URL, in
// the order the API reports them.
func (c *Client) List(ctx context.Context, listURL string) ([]reposh.Entry, error) {
	body, err := c.get(ctx, listURL, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var items []contentItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode listing %s: %w", listURL, err)
	}

	entries := make([]reposh.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, reposh.Entry{
			Name: item.Name,
			Kind: reposh.EntryKind(item.Type),
			URL:  item.URL,
		})
	}
	return entries, nil
}

// FetchText returns the raw content of a repository file.
func (c *Client) FetchText(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, c.rawFileURL(path), "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// BrowseURL returns the web page for a repository path. The root maps to
// the branch's tree page.
func (c *Client) BrowseURL(path string) string {
	base := fmt.Sprintf("%s/%s/%s", c.webURL, url.PathEscape(c.owner), url.PathEscape(c.name))
	path = strings.Trim(path, "/")
	if path == "" {
		return base + "/tree/" + url.PathEscape(c.branch)
	}
	return base + "/blob/" + url.PathEscape(c.branch) + "/" + escapePath(path)
}

func (c *Client) rawFileURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		c.rawURL, url.PathEscape(c.owner), url.PathEscape(c.name), url.PathEscape(c.branch),
		escapePath(strings.Trim(path, "/")))
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (c *Client) get(ctx context.Context, target, accept string) ([]byte, error) {
	var body []byte
	err := c.retry.Execute(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.getOnce(ctx, target, accept)
		return err
	})
	return body, err
}

func (c *Client) getOnce(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Verbose("GET %s", target)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &reposh.StatusError{Code: resp.StatusCode, URL: target, Body: string(snippet)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	if len(body) > maxContentBytes {
		return nil, fmt.Errorf("%s is larger than %d bytes", target, maxContentBytes)
	}
	return body, nil
}
