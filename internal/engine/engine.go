package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/progress"
)

// Result pairs one input with either the processor's output or the error
// that kept it from succeeding. Index is the input's position in the
// original sequence.
type Result struct {
	Index  int
	Input  string
	Output *processor.Output
	Err    error
}

// Failed reports whether the item ended in a recorded failure.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Summary counts outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize tallies a result sequence.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// Options carries the per-run knobs that are not part of the processor
// contract itself.
type Options struct {
	// OutputDir, when set, derives each item's output path as
	// OutputDir/base(input). Empty leaves the destination to the processor.
	OutputDir string
	// Params are passed through to every Process call.
	Params processor.Params
	// Description labels the progress bar.
	Description string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// NewReporter overrides progress construction; used by tests. When nil
	// the reporter comes from the configuration (bar or no-op).
	NewReporter func(total int) progress.Reporter
}

// Run validates and processes inputs with proc, using at most
// cfg.MaxWorkers concurrent executions. The returned slice has exactly one
// entry per input, in input order. Individual item failures are recorded
// in the results and never abort the batch; only systemic problems (nil
// processor, invalid worker count) return an error.
func Run(ctx context.Context, proc processor.Processor, inputs []string, cfg *config.Config, opts Options) ([]Result, error) {
	if proc == nil {
		return nil, processor.Configf("nil processor")
	}
	if cfg == nil {
		return nil, processor.Configf("nil configuration")
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	if cfg.MaxWorkers < 1 {
		return nil, processor.Configf("max_workers must be >= 1, got %d", cfg.MaxWorkers)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	description := opts.Description
	if description == "" {
		description = "Processing"
	}

	var reporter progress.Reporter
	if opts.NewReporter != nil {
		reporter = opts.NewReporter(len(inputs))
	} else {
		reporter = progress.New(len(inputs), description, cfg.EnableProgressBars)
	}
	defer reporter.Finish()

	logger.Info("batch started", "total", len(inputs), "workers", cfg.MaxWorkers)

	// Validate everything up front; rejected items are recorded in place
	// and never reach a worker.
	results := make([]Result, len(inputs))
	pending := make([]int, 0, len(inputs))
	for i, input := range inputs {
		results[i] = Result{Index: i, Input: input}
		if err := proc.ValidateInput(input); err != nil {
			if !errors.Is(err, processor.ErrValidation) {
				err = fmt.Errorf("%w: %v", processor.ErrValidation, err)
			}
			results[i].Err = err
			logger.Warn("input rejected", "input", input, "error", err)
			reporter.Advance(1)
			continue
		}
		pending = append(pending, i)
	}

	workers := cfg.MaxWorkers
	if workers > len(pending) {
		workers = len(pending)
	}

	if workers > 0 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range jobs {
					results[idx].Output, results[idx].Err = runItem(ctx, proc, inputs[idx], request(inputs[idx], cfg, opts))
					if results[idx].Err != nil {
						logger.Warn("item failed", "input", inputs[idx], "error", results[idx].Err)
					}
					reporter.Advance(1)
				}
			}()
		}
		for _, idx := range pending {
			jobs <- idx
		}
		close(jobs)
		wg.Wait()
	}

	s := Summarize(results)
	logger.Info("batch finished", "total", s.Total, "succeeded", s.Succeeded, "failed", s.Failed)
	return results, nil
}

func request(input string, cfg *config.Config, opts Options) processor.Request {
	req := processor.Request{Params: opts.Params, Config: cfg}
	if opts.OutputDir != "" {
		req.OutputPath = filepath.Join(opts.OutputDir, filepath.Base(input))
	}
	return req
}

// runItem executes one Process call with full failure isolation: a late
// deadline marks the item as timed out without starting it, an unknown
// error kind is classified as a processing failure, and a panic is
// confined to the item that raised it.
func runItem(ctx context.Context, proc processor.Processor, input string, req processor.Request) (out *processor.Output, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrTimeout, ctxErr)
	}
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = processor.Processingf("panic while processing %s: %v", input, rec)
		}
	}()
	out, err = proc.Process(ctx, input, req)
	if err != nil && !processor.IsPerItem(err) {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%w: %v", processor.ErrTimeout, err)
		} else {
			err = fmt.Errorf("%w: %v", processor.ErrProcessing, err)
		}
	}
	return out, err
}
