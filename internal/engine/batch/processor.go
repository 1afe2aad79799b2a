package batch

import (
	"context"
	"errors"
	"fmt"
)

// Batch size limits.
const (
	DefaultBatchSize = 50
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// Callback processes one batch. batchIndex is 0-based; offset is the index
// of batch[0] within the full input.
type Callback[T any] func(ctx context.Context, batch []T, batchIndex, offset int) error

// ProgressCallback is invoked after each batch.
type ProgressCallback func(p Progress)

// Processor splits input into batches.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Process runs callback over items batch by batch and stops on the first
// error or on context cancellation. Empty input is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if callback == nil {
		return ErrNilCallback
	}
	if len(items) == 0 {
		return nil
	}

	progress := newProgress(len(items), p.batchCount(len(items)))

	for batchIndex := range progress.TotalBatches {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := batchIndex * p.batchSize
		end := min(start+p.batchSize, len(items))

		if err := callback(ctx, items[start:end], batchIndex, start); err != nil {
			return fmt.Errorf("batch %d failed: %w", batchIndex, err)
		}

		progress.add(end - start)
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return nil
}

func (p *Processor[T]) batchCount(totalItems int) int {
	batches := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		batches++
	}
	return batches
}
