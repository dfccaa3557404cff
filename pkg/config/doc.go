// Package config composes the daemon configuration for a provisioning run.
//
// Composition merges built-in global defaults with operator overrides (key
// presence wins, never truthiness), expands logical rule stems into
// per-directory glob paths, and renders the result as deterministic YAML.
package config
