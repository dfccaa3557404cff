// Copyright (c) 2026, Promstack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/promstack/provisioner/pkg/defaults"
	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/executor"
	"github.com/promstack/provisioner/pkg/spec"
)

// NotifyPlan records the restart/reload routing computed from the run's
// change signals, as data, before any signal is sent.
type NotifyPlan struct {
	// Restart is wired when a command-line-affecting artifact changed and
	// the spec opts into restart-on-change.
	Restart bool `json:"restart" yaml:"restart"`
	// Reload is wired whenever a configuration-file artifact changed.
	Reload bool `json:"reload" yaml:"reload"`
	// Reasons names the change signals behind the routing.
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// Result summarizes one provisioning run.
type Result struct {
	// RunID uniquely identifies the run in logs and output.
	RunID string `json:"runId" yaml:"runId"`
	// Stage is the final pipeline stage (Complete or Failed).
	Stage Stage `json:"stage" yaml:"stage"`
	// Changes lists every host change the run made, in order.
	Changes []string `json:"changes,omitempty" yaml:"changes,omitempty"`
	// Notify is the computed restart/reload routing.
	Notify NotifyPlan `json:"notify" yaml:"notify"`
	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Changed reports whether the run modified the host at all.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Orchestrator drives the provisioning pipeline:
//
//	Pending -> Install -> Config -> Service -> Reload -> Complete
//
// strictly forward, no retries, no rollback. The first stage error moves the
// run to Failed and nothing later executes. All host access goes through the
// Executor, so the same pipeline serves both apply and plan runs.
type Orchestrator struct {
	Executor executor.Executor
}

// New creates an orchestrator driving the given executor.
func New(exec executor.Executor) *Orchestrator {
	return &Orchestrator{Executor: exec}
}

// run carries the mutable state of one pipeline execution.
type run struct {
	id      string
	spec    *spec.ProvisioningSpec
	mat     *Materialized
	changes []string

	installChanged bool
	envChanged     bool
	configChanged  bool
	serviceStarted bool
}

func (r *run) noteChange(desc string) {
	r.changes = append(r.changes, desc)
}

// Run executes the full pipeline for the given spec. The spec must already
// carry its facts and defaults; Run treats it as an immutable snapshot.
func (o *Orchestrator) Run(ctx context.Context, s *spec.ProvisioningSpec) (*Result, error) {
	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	r := &run{
		id:   uuid.NewString(),
		spec: s,
	}
	logger := slog.With("runId", r.id)
	logger.Info("starting provisioning run",
		"version", s.Artifact.Version,
		"service", s.Service.Name,
	)

	// Resolution and validation complete before any stage touches the host.
	// Their errors surface with their own codes, never as a stage failure.
	mat, err := Preflight(s)
	if err != nil {
		runTotal.WithLabelValues("error").Inc()
		logger.Error("pre-flight resolution failed", "error", err)
		return nil, err
	}
	r.mat = mat

	stages := []struct {
		stage Stage
		fn    func(ctx context.Context, r *run) error
	}{
		{StageInstall, o.install},
		{StageConfig, o.configure},
		{StageService, o.service},
		{StageReload, o.reload},
	}

	for _, st := range stages {
		stageStart := time.Now()
		stageCtx, cancel := context.WithTimeout(ctx, defaults.StageTimeout)
		err := st.fn(stageCtx, r)
		cancel()
		stageDuration.WithLabelValues(string(st.stage)).Observe(time.Since(stageStart).Seconds())

		if err != nil {
			runTotal.WithLabelValues("error").Inc()
			logger.Error("provisioning stage failed",
				"stage", st.stage,
				"error", err,
			)
			result := &Result{
				RunID:    r.id,
				Stage:    StageFailed,
				Changes:  r.changes,
				Duration: time.Since(start),
			}
			return result, errors.WrapWithContext(errors.ErrCodeStageFailure,
				"provisioning stage failed", err,
				map[string]any{"stage": string(st.stage), "runId": r.id})
		}
	}

	runTotal.WithLabelValues("success").Inc()
	changeCount.Set(float64(len(r.changes)))

	result := &Result{
		RunID:    r.id,
		Stage:    StageComplete,
		Changes:  r.changes,
		Notify:   o.notifyPlan(r),
		Duration: time.Since(start),
	}
	logger.Info("provisioning run complete",
		"changes", len(result.Changes),
		"restart", result.Notify.Restart,
		"reload", result.Notify.Reload,
	)
	return result, nil
}

func (o *Orchestrator) install(ctx context.Context, r *run) error {
	changed, err := o.Executor.InstallArtifact(ctx, r.mat.Install)
	if err != nil {
		return err
	}
	if changed {
		r.installChanged = true
		r.noteChange("installed artifact " + r.mat.Install.PkgDirName)
	}
	return nil
}

func (o *Orchestrator) configure(ctx context.Context, r *run) error {
	s := r.spec

	dirs := []string{
		s.Locations.ConfigDir,
		s.Locations.LocalStoragePath,
		r.mat.RulesDir,
	}
	dirs = append(dirs, r.mat.RuleDirs...)
	for _, dir := range dirs {
		changed, err := o.Executor.EnsureDirectory(ctx, dir, defaults.DirMode)
		if err != nil {
			return err
		}
		if changed {
			r.noteChange("created directory " + dir)
		}
	}

	changed, err := o.Executor.EnsureFile(ctx, r.mat.ConfigPath, r.mat.ConfigBytes, defaults.FileMode)
	if err != nil {
		return err
	}
	if changed {
		r.configChanged = true
		r.noteChange("wrote configuration " + r.mat.ConfigPath)
	}

	for _, a := range r.mat.AlertArtifacts {
		changed, err := o.Executor.EnsureFile(ctx, a.Path, a.Content, defaults.FileMode)
		if err != nil {
			return err
		}
		if changed {
			r.configChanged = true
			r.noteChange("wrote alert rules " + a.Path)
		}
	}

	if s.PurgeConfigDir() {
		changed, err := o.Executor.PurgeUnmanaged(ctx, s.Locations.ConfigDir, []string{ConfigFileName})
		if err != nil {
			return err
		}
		if changed {
			r.noteChange("purged unmanaged files from " + s.Locations.ConfigDir)
		}
	}

	changed, err = o.Executor.EnsureFile(ctx, r.mat.EnvFilePath, r.mat.EnvFileBytes, defaults.FileMode)
	if err != nil {
		return err
	}
	if changed {
		r.envChanged = true
		r.noteChange("wrote environment file " + r.mat.EnvFilePath)
	}

	return nil
}

func (o *Orchestrator) service(ctx context.Context, r *run) error {
	if !r.spec.ManageService() {
		return nil
	}

	changed, err := o.Executor.EnsureService(ctx, r.mat.Service)
	if err != nil {
		return err
	}
	if changed {
		r.serviceStarted = true
		r.noteChange("converged service " + r.mat.Service.Unit)
	}
	return nil
}

// notifyPlan computes the restart/reload routing from the run's change
// signals. Command-line-affecting changes (the installed binary, the env
// file) route a restart only when the spec opts in; configuration-file
// changes always wire a reload. With restart-on-change disabled, the daemon
// keeps its stale start-up flags until a natural restart, which is accepted
// behavior.
func (o *Orchestrator) notifyPlan(r *run) NotifyPlan {
	plan := NotifyPlan{}

	if r.installChanged || r.envChanged {
		if r.spec.RestartOnChange() {
			plan.Restart = true
		}
		if r.installChanged {
			plan.Reasons = append(plan.Reasons, "artifact changed")
		}
		if r.envChanged {
			plan.Reasons = append(plan.Reasons, "command line changed")
		}
	}

	if r.configChanged {
		plan.Reload = true
		plan.Reasons = append(plan.Reasons, "configuration changed")
	}

	return plan
}

func (o *Orchestrator) reload(ctx context.Context, r *run) error {
	plan := o.notifyPlan(r)

	if !r.spec.ManageService() || r.spec.Service.Ensure != spec.ServiceRunning {
		return nil
	}
	// A service converged this run is already running the new command line
	// and configuration.
	if r.serviceStarted {
		return nil
	}

	switch {
	case plan.Restart:
		if err := o.Executor.RestartService(ctx, r.mat.Service.Unit); err != nil {
			return err
		}
		r.noteChange("restarted service " + r.mat.Service.Unit)
	case plan.Reload:
		if err := o.Executor.ReloadService(ctx, r.mat.Service.Unit); err != nil {
			return err
		}
		r.noteChange("reloaded service " + r.mat.Service.Unit)
	}

	return nil
}
