package main

import (
	"context"

	mdpress "github.com/mdpress/mdpress"
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input mdpress.Input) (*mdpress.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*mdpress.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
	Close() error
}

// libraryPool adapts mdpress.ServicePool to the CLI Pool interface.
type libraryPool struct {
	pool *mdpress.ServicePool
}

// Compile-time check that libraryPool implements Pool.
var _ Pool = (*libraryPool)(nil)

// newLibraryPool creates a pool of n services configured with opts.
func newLibraryPool(n int, opts ...mdpress.Option) *libraryPool {
	return &libraryPool{pool: mdpress.NewServicePool(n, opts...)}
}

func (l *libraryPool) Acquire() Converter {
	return l.pool.Acquire()
}

func (l *libraryPool) Release(c Converter) {
	if svc, ok := c.(*mdpress.Service); ok {
		l.pool.Release(svc)
	}
}

func (l *libraryPool) Size() int {
	return l.pool.Size()
}

func (l *libraryPool) Close() error {
	return l.pool.Close()
}
