// Package worker replays move scripts concurrently on a fixed pool of
// goroutines.
package worker

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/xadrez-go/internal/errors"
	"github.com/lgbarn/xadrez-go/internal/script"
)

// WorkItem is one script file to replay.
type WorkItem struct {
	Path  string
	Index int // position on the command line
}

// ProcessResult is the outcome of one WorkItem. Err is set when the script
// could not be read or parsed; rejected moves live in Report.Err.
type ProcessResult struct {
	Path   string
	Index  int
	Report *script.Report
	Err    error

	// DuplicateOf names an earlier script that ended in the same position.
	DuplicateOf string
}

// ProcessFunc replays a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over submitted items on several goroutines.
// Each item gets its own match, so workers share no game state.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // drain without replaying
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item. It blocks while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers skip items that have not started yet.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run replays every path and returns the results in input order.
func Run(paths []string, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	pool := NewPool(processFunc, opts...)
	pool.Start()

	go func() {
		for i, path := range paths {
			pool.Submit(WorkItem{Path: path, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(paths))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ReplayFile returns a ProcessFunc that parses the script at the item's path
// and replays it with opts.
func ReplayFile(opts script.ReplayOptions) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Path: item.Path, Index: item.Index}
		s, err := script.ParseFile(item.Path)
		if err != nil {
			res.Err = err
			return res
		}
		res.Report = script.Replay(s, opts)
		return res
	}
}

// Errors merges every failure in results, read errors and rejected moves
// alike, into one *multierror.Error. It returns nil when all scripts were
// replayed cleanly.
func Errors(results []ProcessResult) error {
	var merged *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merged = multierror.Append(merged, errors.Wrap(r.Err, r.Path))
		}
		if r.Report != nil && r.Report.Err != nil {
			merged = multierror.Append(merged, r.Report.Errors()...)
		}
	}
	return merged.ErrorOrNil()
}
