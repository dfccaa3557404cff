// Package orchestrator drives the provisioning pipeline for the metrics
// daemon: pre-flight resolution of every artifact, then install, configure,
// service convergence, and restart/reload routing, strictly in that order.
//
// The orchestrator itself performs no I/O; all host access goes through an
// executor.Executor, so a plan executor turns the same pipeline into a
// read-only dry run.
package orchestrator
