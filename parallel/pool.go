// Package parallel runs independent work items on a bounded set of
// workers. Decodes are pure functions of their input bytes, so running one
// file per worker is safe.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits one work item to the pool.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted work drains; done also closes the
	// pool for further submissions.
	WaitFunc func(done bool)
)

type Pool struct {
	wg   sync.WaitGroup
	stop func()

	Do   WorkerFunc
	Wait WaitFunc
}

// Start launches a pool of numWorkers workers. Values below 1 mean one
// worker per CPU; a single-worker pool degenerates to running work inline.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if numWorkers == 1 {
		p.Do = func(f func()) { f() }
		p.Wait = func(bool) {}
		return p
	}

	work := make(chan func(), numWorkers)
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range work {
				f()
			}
		}()
	}

	p.Do = func(f func()) { work <- f }
	p.stop = sync.OnceFunc(func() { close(work) })
	p.Wait = func(done bool) {
		if done {
			p.stop()
		}
		p.wg.Wait()
	}
	return p
}
