// Package services defines shared utilities consumed by the catalog pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp refresh run IDs and category names for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     transport, status, and decode failures with errors.Is.
//   - Outcome, which carries a value together with the cause that forced it
//     to a default, so best-effort lookups stay distinguishable from genuine
//     results.
package services
