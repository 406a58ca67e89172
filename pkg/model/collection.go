package model

import (
	"context"
	"maps"
	"sync"
)

// CollectionFetcher is the slice of the REST client a Collection binds to.
type CollectionFetcher interface {
	GetCollectionRaw(ctx context.Context, id string) (map[string]any, error)
}

type FetchedHandler func(c *Collection)

type ErrorHandler func(c *Collection, err error)

// Collection is a client-side binding of one remote Collection resource.
//
// It starts empty. Fetch replaces its attributes with the server response,
// verbatim, and notifies fetched handlers. A failed fetch leaves the
// attributes as they were and notifies error handlers instead.
//
// A Collection is safe to share between goroutines, but ordering between
// concurrent fetches is not defined; the last write wins.
type Collection struct {
	fetcher CollectionFetcher
	id      string

	mu      sync.Mutex
	attrs   map[string]any
	fetched bool

	onFetched []FetchedHandler
	onError   []ErrorHandler
}

// NewCollection binds a new, empty Collection to the resource with given id.
func NewCollection(fetcher CollectionFetcher, id string) *Collection {
	return &Collection{
		fetcher: fetcher,
		id:      id,
		attrs:   map[string]any{},
	}
}

func (c *Collection) Id() string {
	return c.id
}

// OnFetched registers a handler called after each successful fetch.
//
// Register handlers before calling Fetch.
func (c *Collection) OnFetched(h FetchedHandler) *Collection {
	c.onFetched = append(c.onFetched, h)
	return c
}

// OnError registers a handler called after each failed fetch.
//
// Register handlers before calling Fetch.
func (c *Collection) OnError(h ErrorHandler) *Collection {
	c.onError = append(c.onError, h)
	return c
}

// Attributes returns a copy of the last successfully fetched state.
//
// Before the first successful fetch, it is empty.
func (c *Collection) Attributes() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.attrs)
}

// Fetched reports whether the Collection has been populated at least once.
func (c *Collection) Fetched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetched
}

// Fetch reads the remote resource and replaces the local attributes with it.
//
// On success, fetched handlers run, on the calling goroutine, after the
// attributes are swapped in. On failure, the attributes stay as they were
// and error handlers run instead. There is no retry.
func (c *Collection) Fetch(ctx context.Context) error {
	attrs, err := c.fetcher.GetCollectionRaw(ctx, c.id)
	if err != nil {
		for _, h := range c.onError {
			h(c, err)
		}
		return err
	}

	c.mu.Lock()
	c.attrs = attrs
	c.fetched = true
	c.mu.Unlock()

	for _, h := range c.onFetched {
		h(c)
	}
	return nil
}
