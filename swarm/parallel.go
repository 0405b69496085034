package swarm

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum particle count to use the worker pool.
// Below this, single-threaded is faster due to dispatch overhead.
const parallelThreshold = 4096

// chunk is a particle index range for one worker.
type chunk struct {
	start, end int
}

// pool runs the force kernel across persistent workers. Workers write
// disjoint buffer ranges and never read another particle's slots, so the
// per-tick whole-buffer semantics are preserved without a copy; the render
// fence is the store's publish step.
type pool struct {
	numWorkers int

	workChan chan chunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool

	// run is set in the serial phase before dispatch; the channel send
	// orders it before any worker reads it.
	run func(start, end int)
}

func newPool() *pool {
	return &pool{numWorkers: runtime.GOMAXPROCS(0)}
}

// start launches the persistent worker goroutines.
func (p *pool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan chunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *pool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case c, ok := <-p.workChan:
			if !ok {
				return
			}
			p.run(c.start, c.end)
			p.doneChan <- struct{}{}
		}
	}
}

// dispatch splits [0, n) into per-worker chunks, runs them, and waits for
// completion. Small populations run inline on the calling goroutine.
func (p *pool) dispatch(n int, run func(start, end int)) {
	if n < parallelThreshold {
		run(0, n)
		return
	}

	if !p.running {
		p.start()
	}
	p.run = run

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		p.workChan <- chunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
