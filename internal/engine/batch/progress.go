package batch

import "time"

const percentMultiplier = 100

// Progress is a snapshot of how far processing has got.
type Progress struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	StartTime        time.Time
}

func newProgress(totalItems, totalBatches int) Progress {
	return Progress{
		TotalItems:   totalItems,
		TotalBatches: totalBatches,
		StartTime:    time.Now(),
	}
}

func (p *Progress) add(items int) {
	p.ProcessedItems += items
	p.ProcessedBatches++
}

// PercentComplete returns the completion percentage (0-100).
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / float64(p.TotalItems) * percentMultiplier
}

// IsComplete returns true if all items have been processed.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}

// Elapsed returns the time since processing started.
func (p Progress) Elapsed() time.Duration {
	return time.Since(p.StartTime)
}
