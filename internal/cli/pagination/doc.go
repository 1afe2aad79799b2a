// Package pagination provides pagination, sorting and paging metadata for
// list-style CLI commands.
//
//   - Params: CLI flag values and validation (offset mode or page mode)
//   - Meta: response metadata for paginated JSON output
//   - ActivitySorter: field-validated sorting of ledger activities
package pagination
