// Package preflight provides readiness checks for the external services and
// filesystem paths gamefinder depends on.
//
// The CLI "gamefinder check" command runs RunAll and prints one line per
// result. Checks make a single request each with a short timeout and never
// retry; a failing check explains what to fix rather than returning an error.
package preflight
