// Package cli implements the promprov command line: apply, plan, facts, and
// version. Root wiring handles config file discovery, environment binding,
// structured logger setup, and signal-aware context cancellation.
package cli
