// Package cache memoizes values derived from the activity ledger.
//
// Entries are keyed by a name plus the ledger version and civil day they were
// computed for. A lookup with a different version or day is a miss, so a
// ledger mutation (or midnight) invalidates every dependent value without
// explicit eviction. The store is in-memory and safe for concurrent use.
package cache
