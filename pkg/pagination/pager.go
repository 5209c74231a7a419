package pagination

import (
	"net/http"
	"net/url"
)

// Pager drives one pagination strategy.
type Pager interface {
	// NextURL returns the pending page URL and forgets it, or nil when done.
	NextURL() *url.URL
	// UpdateState reads the cursor for the following page from resp.
	UpdateState(resp *http.Response) error
}
