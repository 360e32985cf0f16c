package testutil

import (
	"context"
	"sync"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// FakeProcessor is a scriptable processor for tests. The zero value
// validates everything and returns an empty output for every input.
type FakeProcessor struct {
	ProcKind     processor.Kind
	ValidateFunc func(path string) error
	ProcessFunc  func(ctx context.Context, input string, req processor.Request) (*processor.Output, error)

	mu        sync.Mutex
	processed []string
}

func (f *FakeProcessor) Kind() processor.Kind {
	if f.ProcKind == "" {
		return processor.KindGeneric
	}
	return f.ProcKind
}

func (f *FakeProcessor) ValidateInput(path string) error {
	if f.ValidateFunc != nil {
		return f.ValidateFunc(path)
	}
	return nil
}

func (f *FakeProcessor) Process(ctx context.Context, input string, req processor.Request) (*processor.Output, error) {
	f.mu.Lock()
	f.processed = append(f.processed, input)
	f.mu.Unlock()
	if f.ProcessFunc != nil {
		return f.ProcessFunc(ctx, input, req)
	}
	return &processor.Output{}, nil
}

// Processed returns a copy of the inputs that reached Process, in
// completion order.
func (f *FakeProcessor) Processed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.processed...)
}

// CountingReporter records progress calls.
type CountingReporter struct {
	mu       sync.Mutex
	advances int
	finished bool
}

func (c *CountingReporter) Advance(n int) {
	c.mu.Lock()
	c.advances += n
	c.mu.Unlock()
}

func (c *CountingReporter) Finish() {
	c.mu.Lock()
	c.finished = true
	c.mu.Unlock()
}

// Advances returns the accumulated advance count.
func (c *CountingReporter) Advances() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advances
}

// Finished reports whether Finish was called.
func (c *CountingReporter) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}
