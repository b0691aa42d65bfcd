package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Page is the server's pagination envelope.
type Page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// ListIterator walks a paginated collection lazily. Each page is
// fetched on demand through Do, so rate limiting and retry apply to
// every page request. The iteration is finite (it ends when the server
// stops sending a next cursor) and not restartable; call List again to
// re-read a collection.
//
//	it := client.List(ctx, "units/units/", nil)
//	for it.Next() {
//		var u unit
//		if err := it.Decode(&u); err != nil { ... }
//	}
//	if err := it.Err(); err != nil { ... }
type ListIterator struct {
	client  *Client
	ctx     context.Context
	path    string
	query   url.Values
	started bool
	nextURL string
	items   []json.RawMessage
	idx     int
	err     error
}

// List begins a lazy iteration over the collection at path. Query
// parameters (filters, ordering) are passed through opaquely on the
// first page request; subsequent pages follow the server's next cursor
// verbatim.
func (c *Client) List(ctx context.Context, path string, query url.Values) *ListIterator {
	return &ListIterator{
		client: c,
		ctx:    ctx,
		path:   path,
		query:  query,
	}
}

// Next advances to the next record, fetching pages as needed. It
// returns false when the collection is exhausted or a page request
// failed terminally; check Err to distinguish.
func (it *ListIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.items) {
		if it.started && it.nextURL == "" {
			return false
		}
		if err := it.fetch(); err != nil {
			it.err = err
			return false
		}
	}
	it.idx++
	return true
}

// Value returns the current record. Valid after a true Next.
func (it *ListIterator) Value() json.RawMessage {
	return it.items[it.idx-1]
}

// Decode unmarshals the current record into v.
func (it *ListIterator) Decode(v any) error {
	return json.Unmarshal(it.Value(), v)
}

// Err returns the terminal error that stopped iteration, if any. A
// failed page request surfaces here at the point of failure; records
// from earlier pages are never silently truncated.
func (it *ListIterator) Err() error {
	return it.err
}

func (it *ListIterator) fetch() error {
	req := Request{Method: http.MethodGet, URL: it.nextURL}
	if !it.started {
		req = Request{Method: http.MethodGet, Path: it.path, Query: it.query}
	}

	resp, err := it.client.Do(it.ctx, req)
	if err != nil {
		return err
	}

	var page Page
	if err := resp.Decode(&page); err != nil {
		return err
	}

	it.started = true
	it.items = page.Results
	it.idx = 0
	it.nextURL = ""
	if page.Next != nil {
		it.nextURL = *page.Next
	}
	return nil
}

// firstPage fetches a single page of the collection at path without
// following the next cursor.
func (c *Client) firstPage(ctx context.Context, path string, query url.Values) (*Page, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}
	var page Page
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// First returns the first record matching the query, or nil when
// nothing matches. Only the first page is fetched.
func (c *Client) First(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	page, err := c.firstPage(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}
	return page.Results[0], nil
}

// One returns the single record matching the query, or nil when
// nothing matches. It returns an *AmbiguousResultError when more than
// one record matches.
func (c *Client) One(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	page, err := c.firstPage(ctx, path, query)
	if err != nil {
		return nil, err
	}

	matches := len(page.Results)
	if page.Count > matches {
		matches = page.Count
	}
	if matches > 1 {
		return nil, &AmbiguousResultError{Path: path, Count: matches}
	}
	if len(page.Results) == 0 {
		return nil, nil
	}
	return page.Results[0], nil
}
