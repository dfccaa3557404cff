// Package spec defines the ProvisioningSpec: the fully-resolved, caller-owned
// set of inputs for one provisioning run.
//
// A spec combines operator-declared values with host-detected facts (OS,
// architecture, service-manager style). Optional fields carry documented
// defaults applied by ApplyDefaults; required fields have none and fail
// validation with MISSING_REQUIRED_PARAMETER. Once orchestration begins the
// spec is an immutable snapshot; derived entities such as the resolved
// artifact and merged configuration are owned by the run and discarded when
// it completes.
package spec
