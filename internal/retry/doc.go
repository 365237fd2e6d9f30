// Package retry re-runs remote repository requests that fail transiently,
// waiting with exponential backoff between attempts.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewHTTPErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetchListing(ctx)
//	})
//
// HTTPErrorClassifier treats rate limiting (429), gateway failures
// (502, 503, 504) and temporary network errors as transient. Everything
// else, including 404, fails immediately.
//
// Executor instances are safe for concurrent use. WithOnRetry returns a
// copy, so callers can attach per-request callbacks without shared state.
package retry
