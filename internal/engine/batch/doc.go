// Package batch feeds large inputs, such as an imported activity log, through
// a callback in fixed-size batches, reporting progress after each batch and
// stopping promptly when the context is cancelled. Batches run sequentially
// so imported activities keep their input order.
package batch
