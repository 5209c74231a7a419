package pagination

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/saturnines/labclient/pkg/errors"
)

// LinkPager follows the rel="next" target of the Link header.
type LinkPager struct {
	nextURL *url.URL
}

// NewLinkPager builds a LinkPager whose first page is start.
func NewLinkPager(start *url.URL) *LinkPager {
	return &LinkPager{nextURL: start}
}

// NextURL returns the next page URL or nil when done.
func (p *LinkPager) NextURL() *url.URL {
	next := p.nextURL
	p.nextURL = nil
	return next
}

// UpdateState parses Link header and saves next URL.
func (p *LinkPager) UpdateState(resp *http.Response) error {
	p.nextURL = nil

	// relations may be split across several Link fields
	next, ok := NextLink(strings.Join(resp.Header.Values("Link"), ","))
	if !ok {
		return nil
	}

	u, err := url.Parse(next)
	if err != nil {
		return errors.WrapError(err, errors.ErrPagination, fmt.Sprintf("invalid next link %q", next))
	}
	// Handle relative URLs by resolving against the page that carried them
	if !u.IsAbs() {
		if resp.Request == nil || resp.Request.URL == nil {
			return errors.WrapError(
				fmt.Errorf("relative next link %q without a request URL", next),
				errors.ErrPagination,
				"resolve next link",
			)
		}
		u = resp.Request.URL.ResolveReference(u)
	}
	p.nextURL = u
	return nil
}

// NextLink extracts the rel="next" target from a Link header value such as
//
//	<https://host/api/v4/projects?page=2>; rel="next", <https://host/api/v4/projects?page=9>; rel="last"
func NextLink(header string) (string, bool) {
	next, ok := parseLinkHeader(header)["next"]
	return next, ok
}

func parseLinkHeader(header string) map[string]string {
	parts := strings.Split(header, ",")
	links := make(map[string]string, len(parts))
	for _, part := range parts {
		seg := strings.Split(strings.TrimSpace(part), ";")
		if len(seg) < 2 {
			continue
		}
		urlPart := strings.Trim(seg[0], "<> ")
		if urlPart == "" {
			continue
		}
		for _, param := range seg[1:] {
			p := strings.SplitN(strings.TrimSpace(param), "=", 2)
			if len(p) != 2 || !strings.EqualFold(strings.TrimSpace(p[0]), "rel") {
				continue
			}
			// rel may hold several space separated relation types
			for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(p[1]), `"`)) {
				rel = strings.ToLower(rel)
				if _, seen := links[rel]; !seen {
					links[rel] = urlPart
				}
			}
		}
	}
	return links
}
