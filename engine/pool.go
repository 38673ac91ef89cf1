// Package engine ties the stroke store to a rendering worker pool, a
// camera, and the document model, and provides import, export and
// persistence on top.
package engine

import (
	"runtime"
	"sync"

	"github.com/gogpu/inkwell"
)

// WorkerPool runs rendering jobs on a fixed set of goroutines. It
// implements store.Spawner.
type WorkerPool struct {
	jobs     chan func()
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWorkerPool starts a pool with n workers. n <= 0 selects one worker
// per CPU.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &WorkerPool{jobs: make(chan func(), n*4)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

func (p *WorkerPool) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			inkwell.Logger().Error("rendering job panicked", "panic", r)
		}
	}()
	job()
}

// Spawn queues a job. It blocks when the queue is full and is a no-op
// after Stop.
func (p *WorkerPool) Spawn(job func()) {
	defer func() {
		// Sending on the closed channel after Stop is discarded.
		_ = recover()
	}()
	p.jobs <- job
}

// Stop drains the queue and waits for the workers to exit.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
