package radmachine

import (
	"context"

	"github.com/radmachine/client-go/internal/api"
)

// Iter is a lazy iterator over a paginated collection, decoded into T.
// It is finite and not restartable; call the listing operation again to
// re-read a collection. Page requests happen transparently during Next
// and are subject to the client's rate limiting and retry policy.
//
//	it := client.ListUnits(ctx, nil)
//	for it.Next() {
//	    fmt.Println(it.Value().Name)
//	}
//	if err := it.Err(); err != nil {
//	    // a page request failed terminally at this point
//	}
type Iter[T any] struct {
	it  *api.ListIterator
	cur T
	err error
}

func listAs[T any](c *Client, ctx context.Context, path string, filter Filter) *Iter[T] {
	return &Iter[T]{it: c.api.List(ctx, path, filter.query())}
}

// Next advances to the next record, returning false when the collection
// is exhausted or a page request failed. Check Err to distinguish.
func (i *Iter[T]) Next() bool {
	if i.err != nil {
		return false
	}
	if !i.it.Next() {
		return false
	}
	var v T
	if err := i.it.Decode(&v); err != nil {
		i.err = err
		return false
	}
	i.cur = v
	return true
}

// Value returns the current record. Valid after a true Next.
func (i *Iter[T]) Value() T {
	return i.cur
}

// Err returns the error that stopped iteration, if any.
func (i *Iter[T]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.it.Err()
}

// Collect drains the iterator into a slice.
func (i *Iter[T]) Collect() ([]T, error) {
	var out []T
	for i.Next() {
		out = append(out, i.Value())
	}
	if err := i.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
