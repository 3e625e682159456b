// Package textutil provides small text helpers shared by the filter and the
// CLI: Unicode case folding for preference matching, display title casing,
// and a generic conditional.
package textutil
