// Package executor applies desired state to a host.
//
// The Executor interface exposes idempotent ensure operations that report
// whether the host had to change; orchestration turns those change signals
// into service restart and reload decisions. LocalExecutor converges the
// live host (filesystem, HTTP artifact downloads, systemd over D-Bus) while
// PlanExecutor performs read-only inspection and records what an apply run
// would do.
package executor
