// Package main hosts the gamefinder CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, builds the catalog,
// cache, and filter components from it, and renders recommendations as a
// table or JSON. Cache inspection, configuration scaffolding, and IGDB token
// retrieval live beside the main recommend command.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it here through a command or flag.
package main
