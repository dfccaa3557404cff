// Package defaults centralizes the default values used across the
// provisioning pipeline: daemon identity, filesystem layout, artifact
// source, file modes, and operation timeouts.
//
// Keeping these in one place makes the documented defaults of optional
// ProvisioningSpec fields auditable and keeps magic numbers out of the
// stage implementations.
package defaults
