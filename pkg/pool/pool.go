// Package pool provides typed object pooling for titleclean.
//
// Cleaning builds a short-lived byte key for every row during duplicate
// detection, and the JSON Lines writer encodes every row into a scratch
// buffer. Both take their buffers from here instead of allocating one per
// row.
//
// Example usage:
//
//	buf := pool.GetBytes()
//	defer pool.PutBytes(buf)
//	*buf = append(*buf, "key"...)
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is a type-safe wrapper around sync.Pool that resets objects on
// Put and counts allocations. It is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		gets      int64
		allocated int64
		inUse     int64
	}
}

// New creates a pool. newFn builds an object when the pool is empty and
// reset, when not nil, clears an object before it is pooled again.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return newFn()
	}
	return p
}

// Get returns a pooled object, creating one when none is available.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.gets, 1)
	atomic.AddInt64(&p.stats.inUse, 1)
	return p.pool.Get().(T)
}

// Put resets obj and makes it available to later Get calls.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats reports how many objects were created, how many are checked out
// and how many Get calls were served by a reused object.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	allocated = atomic.LoadInt64(&p.stats.allocated)
	inUse = atomic.LoadInt64(&p.stats.inUse)
	hits = atomic.LoadInt64(&p.stats.gets) - allocated
	if hits < 0 {
		hits = 0
	}
	return allocated, inUse, hits
}
