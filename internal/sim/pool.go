package sim

import (
	"sync"

	"github.com/san-kum/bounce/internal/physics"
)

// SnapshotPool recycles the per-tick snapshot buffers. It is safe for
// concurrent use.
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]physics.Snapshot, 0, 16)
				return &s
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *SnapshotPool) Get(n int) []physics.Snapshot {
	buf := *(p.pool.Get().(*[]physics.Snapshot))
	if cap(buf) < n {
		buf = make([]physics.Snapshot, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = physics.Snapshot{}
	}
	return buf
}

func (p *SnapshotPool) Put(s []physics.Snapshot) {
	s = s[:0]
	p.pool.Put(&s)
}

// Capture fills a pooled buffer with the current state of every body.
func (p *SnapshotPool) Capture(bodies []physics.Body) []physics.Snapshot {
	buf := p.Get(len(bodies))
	for i, b := range bodies {
		buf[i] = b.Snapshot()
	}
	return buf
}
