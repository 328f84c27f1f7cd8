// Package diag defines the diagnostic model shared by every analysis pass in
// the checker.
//
// # Data model
//
// Diagnostic is the central record: a primary span, the enclosing
// definition's signature, and a Kind. Kind is a closed sum type with one
// variant per error kind; each variant holds exactly the structured payload
// that kind reports (references, resolved types, context strings). New kinds
// are added by adding a variant, which surfaces as a compile error everywhere
// kinds are matched exhaustively (codes, descriptions, join, suppression).
//
// # Lifecycle operations
//
//   - New / builders: create immutable diagnostics.
//   - Join: merge two diagnostics about the same site from different
//     control-flow paths; the merge rule is kind-specific.
//   - Bag.Dedup: structural deduplication.
//   - Bag.Filter: drop diagnostics an external judgment declares invalid
//     (typically: attributed to unreachable statements).
//   - Suppressed: source-level ignore comments and per-file modes.
//   - Instantiate: resolve a diagnostic into its displayable form (path,
//     line, column, numeric code, long and concise descriptions).
//
// Diagnostics are never dropped outside Filter, Dedup and Suppressed.
//
// # Emitting
//
// Producers emit through a Reporter so they stay decoupled from storage.
// BagReporter appends into a Bag; DedupReporter wraps another Reporter and
// drops exact duplicates. Rendering lives in internal/diagfmt.
package diag
