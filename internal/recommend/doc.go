// Package recommend filters and orders games against user preferences.
//
// Recommend is an order-preserving subsequence filter: genre must match one
// of a game's genres exactly under case folding, platform must be a folded
// substring of one of its platforms, and the price must not exceed the
// ceiling. A zero ceiling only admits free games. RatedOnly and SortByPrice
// are the display toggles applied afterwards.
package recommend
