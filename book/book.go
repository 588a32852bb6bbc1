// Package book prices a collection of discount-bond-option requests against
// one Hull-White model using a worker pool. The model itself is read-only
// during pricing; callers must not change its constants or relink its curve
// while a batch is running.
package book

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/irquant/models"
)

const jobQueueDepth = 1000

// Request is one option to price.
type Request struct {
	Type         models.OptionType
	Strike       float64
	Maturity     float64
	BondMaturity float64
}

// Result pairs a request with its price, or the error that aborted it.
// A failed request does not abort the rest of the batch.
type Result struct {
	Request Request
	Price   float64
	Err     error
}

// Option tunes a batch run.
type Option func(*config)

type config struct {
	workers  int
	progress bool
}

// WithWorkers overrides the worker count.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress renders a progress bar while the batch runs.
func WithProgress() Option {
	return func(c *config) { c.progress = true }
}

// defaultWorkers sizes the pool from the logical CPU count, falling back to
// the runtime's view when the probe fails.
func defaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// PriceAll prices every request and returns results in request order.
func PriceAll(model *models.HullWhite, reqs []Request, opts ...Option) []Result {
	cfg := config{workers: defaultWorkers()}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	var bar *mpb.Bar
	var progress *mpb.Progress
	if cfg.progress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(reqs)),
			mpb.PrependDecorators(
				decor.Name("Pricing"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	jobs := make(chan int, jobQueueDepth)
	var wg sync.WaitGroup
	for w := 0; w < cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := reqs[i]
				price, err := model.DiscountBondOption(req.Type, req.Strike, req.Maturity, req.BondMaturity)
				results[i] = Result{Request: req, Price: price, Err: err}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if progress != nil {
		progress.Wait()
	}
	return results
}
