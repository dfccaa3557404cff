// Package facts gathers host properties (OS, machine architecture, hostname,
// service-manager style) that feed the provisioning spec. Collectors run in
// parallel and are created through a factory so tests can substitute fakes.
package facts
