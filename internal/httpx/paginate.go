package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Wire keys of a Coda list response.
const (
	ItemsKey         = "items"
	NextPageLinkKey  = "nextPageLink"
	NextPageTokenKey = "nextPageToken"
	LimitParam       = "limit"
	PageTokenParam   = "pageToken"
)

// Collection is the merged result of a list call.
type Collection struct {
	// Body is the first page with every page's items merged into "items"
	// and the continuation keys removed. For a bounded fetch or a
	// non-list endpoint it is the decoded response verbatim.
	Body map[string]any
	// Items holds the merged item records in arrival order.
	Items []map[string]any
	// IsList is false when the endpoint returned no "items" key at all.
	IsList bool
	// Pages is the number of requests issued.
	Pages int
}

// Paginator follows continuation cursors until a list is exhausted.
type Paginator struct {
	transport *Transport
}

// NewPaginator creates a Paginator driving the given transport.
func NewPaginator(transport *Transport) *Paginator {
	return &Paginator{transport: transport}
}

// FetchAll issues GET path?query and follows nextPageLink/nextPageToken
// until no cursor remains. When limit > 0 exactly one page is returned
// verbatim, cursor included.
func (p *Paginator) FetchAll(ctx context.Context, path string, query url.Values, limit int) (*Collection, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if limit > 0 {
		q.Set(LimitParam, strconv.Itoa(limit))
	}

	body, err := p.transport.Request(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}

	items, isList, err := pageItems(body)
	if err != nil {
		return nil, err
	}
	if !isList {
		return &Collection{Body: body, Pages: 1}, nil
	}
	if limit > 0 {
		return &Collection{Body: body, Items: items, IsList: true, Pages: 1}, nil
	}

	pages := 1
	seen := make(map[string]struct{})
	page := body
	// An empty first page ends the list; later empty pages are followed.
	for len(items) > 0 {
		req, cursor, ok, err := p.nextRequest(path, page)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, dup := seen[cursor]; dup {
			return nil, fmt.Errorf("pagination cursor %q repeated on %s", cursor, path)
		}
		seen[cursor] = struct{}{}

		resp, err := p.transport.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		page, err = resp.Object()
		if err != nil {
			return nil, err
		}
		next, _, err := pageItems(page)
		if err != nil {
			return nil, err
		}
		items = append(items, next...)
		pages++

		p.transport.log("fetched page", "path", path, "page", pages, "count", len(next), "total", len(items))
	}

	merged := make(map[string]any, len(body))
	for k, v := range body {
		merged[k] = v
	}
	delete(merged, NextPageLinkKey)
	delete(merged, NextPageTokenKey)
	list := make([]any, len(items))
	for i, item := range items {
		list[i] = item
	}
	merged[ItemsKey] = list

	return &Collection{Body: merged, Items: items, IsList: true, Pages: pages}, nil
}

// nextRequest builds the follow-up request from a page's cursor. The
// continuation link is self-contained, so the original query is not reused.
// A link outside the transport's base URL is never followed since it would
// carry the bearer token elsewhere; the bare token is used instead.
func (p *Paginator) nextRequest(path string, page map[string]any) (*Request, string, bool, error) {
	link, _ := page[NextPageLinkKey].(string)
	if link != "" && withinBase(p.transport.BaseURL(), link) {
		return &Request{Method: http.MethodGet, URL: link}, link, true, nil
	}
	if token, ok := page[NextPageTokenKey].(string); ok && token != "" {
		return &Request{
			Method: http.MethodGet,
			Path:   path,
			Query:  url.Values{PageTokenParam: []string{token}},
		}, token, true, nil
	}
	if link != "" {
		return nil, "", false, fmt.Errorf("next page link %q is outside %s", link, p.transport.BaseURL())
	}
	return nil, "", false, nil
}

// withinBase reports whether link shares scheme and host with base and sits
// under its path.
func withinBase(base, link string) bool {
	b, err := url.Parse(base)
	if err != nil {
		return false
	}
	l, err := url.Parse(link)
	if err != nil {
		return false
	}
	if !strings.EqualFold(b.Scheme, l.Scheme) || !strings.EqualFold(b.Host, l.Host) {
		return false
	}
	root := strings.TrimSuffix(b.Path, "/")
	return l.Path == root || strings.HasPrefix(l.Path, root+"/")
}

// pageItems extracts the "items" array of a page.
func pageItems(page map[string]any) ([]map[string]any, bool, error) {
	raw, ok := page[ItemsKey]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return []map[string]any{}, true, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true, fmt.Errorf("unexpected %q value of type %T", ItemsKey, raw)
	}
	items := make([]map[string]any, 0, len(list))
	for i, v := range list {
		item, ok := v.(map[string]any)
		if !ok {
			return nil, true, fmt.Errorf("item %d is %T, not an object", i, v)
		}
		items = append(items, item)
	}
	return items, true, nil
}
