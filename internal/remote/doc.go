// Package remote talks to a GitHub-hosted repository.
//
// Client implements the listing, fetching and URL-building capabilities
// of pkg/reposh over the GitHub contents API and raw content host. Every
// request goes through a retry.Executor, and non-2xx answers surface as
// *reposh.StatusError. CoalescingFetcher collapses concurrent fetches of
// the same path into one request. BrowserOpener opens URLs in the user's
// web browser.
package remote
