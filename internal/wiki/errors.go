package wiki

import "fmt"

// PageNotFoundError is returned when the queried title does not resolve to
// an existing article.
type PageNotFoundError struct {
	Title string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page %q does not exist on Wikipedia", e.Title)
}

// TransportError is returned when the underlying HTTP exchange fails:
// connection errors, timeouts, or a non-2xx status. The fetcher never
// retries these; retry policy belongs to whoever owns the http.Client.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("revision API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("revision API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when a response decodes but lacks the
// expected query/pages structure. Always fatal to the current run.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed revision API response: %s", e.Reason)
}
