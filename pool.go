package mdpress

import (
	"errors"
	"runtime"
	"sync"
)

const (
	// MinPoolSize is the smallest usable pool.
	MinPoolSize = 1

	// MaxPoolSize bounds concurrent browser instances; each one costs
	// roughly 200MB of memory.
	MaxPoolSize = 8

	// cpuDivisor reserves CPU headroom for Chrome's own child processes.
	cpuDivisor = 2
)

// ServicePool hands out Services for parallel conversion. Every Service
// owns a browser, so pool capacity equals browser count. Services spin
// up lazily on first Acquire rather than at construction.
type ServicePool struct {
	capacity int
	opts     []Option

	idle chan *Service

	mu      sync.Mutex
	all     []*Service
	created int
	closed  bool
}

// NewServicePool builds a pool that will hold up to n Services, each
// configured with opts. No Service exists until one is acquired.
func NewServicePool(n int, opts ...Option) *ServicePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ServicePool{
		capacity: n,
		opts:     opts,
		idle:     make(chan *Service, n),
	}
}

// Acquire returns an idle Service, creating one while the pool is below
// capacity. At capacity it blocks until a Service is released.
func (p *ServicePool) Acquire() *Service {
	select {
	case svc := <-p.idle:
		return svc
	default:
	}

	if svc := p.tryCreate(); svc != nil {
		return svc
	}

	return <-p.idle
}

// tryCreate reserves a creation slot and builds a Service outside the
// lock, since New may do non-trivial work. Returns nil when the pool is
// already at capacity.
func (p *ServicePool) tryCreate() *Service {
	p.mu.Lock()
	if p.created >= p.capacity {
		p.mu.Unlock()
		return nil
	}
	p.created++
	p.mu.Unlock()

	svc := New(p.opts...)

	p.mu.Lock()
	p.all = append(p.all, svc)
	p.mu.Unlock()

	return svc
}

// Release puts a Service back into rotation. After Close it is a no-op,
// so late releases from in-flight workers are harmless. The send happens
// under the mutex, keeping it atomic with the closed check; it cannot
// block because at most capacity Services exist and the channel holds
// that many.
func (p *ServicePool) Release(svc *Service) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.idle <- svc
}

// Close shuts down every Service ever created by the pool and joins
// their errors. Safe to call more than once.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	services := p.all
	p.mu.Unlock()

	var errs []error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size reports the pool capacity, not the number of live Services.
func (p *ServicePool) Size() int {
	return p.capacity
}

// ResolvePoolSize picks a pool size: an explicit positive worker count
// wins, otherwise half of GOMAXPROCS (container-aware via automaxprocs)
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
