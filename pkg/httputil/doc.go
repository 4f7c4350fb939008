// Package httputil provides the retry policy shared by registry clients.
//
// Upstream registries fail transiently (timeouts, 429, 5xx). Clients wrap
// such failures in [RetryableError] and run the request through [Retry] or
// [RetryWithBackoff]; any other error is returned immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.DefaultClient.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
//	    }
//	    return nil
//	})
//
// Defaults: 3 attempts, 1 second initial delay, doubling after each attempt.
package httputil
