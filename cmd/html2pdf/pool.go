package main

import (
	"context"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Converter is the conversion dependency of the CLI, narrowed to bytes so
// tests can fake it without a browser.
type Converter interface {
	Convert(ctx context.Context, input html2pdf.Input) ([]byte, error)
}

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// serviceConverter adapts *html2pdf.Service to the CLI Converter interface.
type serviceConverter struct {
	svc *html2pdf.Service
}

func (c serviceConverter) Convert(ctx context.Context, input html2pdf.Input) ([]byte, error) {
	result, err := c.svc.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	return result.Bytes(), nil
}

// servicePool adapts html2pdf.ServicePool to the CLI Pool interface.
type servicePool struct {
	pool *html2pdf.ServicePool
}

// Compile-time check that servicePool implements Pool.
var _ Pool = (*servicePool)(nil)

func newServicePool(n int, opts ...html2pdf.Option) *servicePool {
	return &servicePool{pool: html2pdf.NewServicePool(n, opts...)}
}

func (p *servicePool) Acquire() Converter {
	return serviceConverter{svc: p.pool.Acquire()}
}

func (p *servicePool) Release(c Converter) {
	if sc, ok := c.(serviceConverter); ok {
		p.pool.Release(sc.svc)
	}
}

func (p *servicePool) Size() int {
	return p.pool.Size()
}

func (p *servicePool) Close() error {
	return p.pool.Close()
}
