// Package cheapshark looks up best-effort current prices from the CheapShark
// deals API.
//
// Lookups never fail: every problem degrades to a zero price, is logged with
// WarnWithContext, and is reported through services.Outcome so callers can
// tell a free game from a failed lookup.
package cheapshark
