package orchestrator

import (
	"strings"
	"testing"

	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

func TestPreflight(t *testing.T) {
	s := runSpec()
	m, err := Preflight(s)
	if err != nil {
		t.Fatalf("Preflight() error: %v", err)
	}

	wantURL := "https://github.com/prometheus/prometheus/releases/download/v2.53.1/prometheus-2.53.1.linux-amd64.tar.gz"
	if m.URL != wantURL {
		t.Errorf("URL = %q, want %q", m.URL, wantURL)
	}
	if m.Arch != "amd64" {
		t.Errorf("Arch = %q", m.Arch)
	}
	if m.Install.PkgDirName != "prometheus-2.53.1.linux-amd64" {
		t.Errorf("PkgDirName = %q", m.Install.PkgDirName)
	}
	if m.ConfigPath != "/etc/prometheus/prometheus.yaml" {
		t.Errorf("ConfigPath = %q", m.ConfigPath)
	}
	if m.RulesDir != "/etc/prometheus/rules" {
		t.Errorf("RulesDir = %q", m.RulesDir)
	}
	if len(m.RuleDirs) != 1 || m.RuleDirs[0] != "/etc/prometheus/rules/alert" {
		t.Errorf("RuleDirs = %v", m.RuleDirs)
	}
	if len(m.AlertArtifacts) != 1 || m.AlertArtifacts[0].Path != "/etc/prometheus/rules/alert.rules" {
		t.Errorf("AlertArtifacts = %+v", m.AlertArtifacts)
	}
	if m.Service.Unit != "prometheus" || !m.Service.Enable {
		t.Errorf("Service = %+v", m.Service)
	}
}

func TestPreflightEnvFile(t *testing.T) {
	s := runSpec()
	s.Config.ExtraArgs = []string{"--web.enable-lifecycle"}

	m, err := Preflight(s)
	if err != nil {
		t.Fatalf("Preflight() error: %v", err)
	}

	env := string(m.EnvFileBytes)
	for _, want := range []string{
		"--config.file=/etc/prometheus/prometheus.yaml",
		"--storage.tsdb.path=/var/lib/prometheus",
		"--storage.tsdb.retention.time=360h",
		"--web.enable-lifecycle",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("env file missing %q:\n%s", want, env)
		}
	}
	if m.EnvFilePath != "/etc/default/prometheus" {
		t.Errorf("EnvFilePath = %q", m.EnvFilePath)
	}
}

func TestPreflightExplicitURL(t *testing.T) {
	s := runSpec()
	s.Artifact.Source.ExplicitURL = "https://mirror.internal/prometheus.tar.gz"

	m, err := Preflight(s)
	if err != nil {
		t.Fatalf("Preflight() error: %v", err)
	}
	if m.URL != "https://mirror.internal/prometheus.tar.gz" {
		t.Errorf("explicit URL not used verbatim: %q", m.URL)
	}
}

func TestPreflightErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*spec.ProvisioningSpec)
		wantCode errors.ErrorCode
	}{
		{
			name:     "bad version",
			mutate:   func(s *spec.ProvisioningSpec) { s.Artifact.Version = "2.53" },
			wantCode: errors.ErrCodeInvalidVersionFormat,
		},
		{
			name:     "unsupported arch",
			mutate:   func(s *spec.ProvisioningSpec) { s.Artifact.RawArch = "sparc64" },
			wantCode: errors.ErrCodeUnsupportedArchitecture,
		},
		{
			name: "duplicate alert files",
			mutate: func(s *spec.ProvisioningSpec) {
				s.Config.AlertFiles = map[string]spec.RuleSet{"a": {}, "A": {}}
			},
			wantCode: errors.ErrCodeDuplicateAlertFile,
		},
		{
			name: "alert file name escapes rules directory",
			mutate: func(s *spec.ProvisioningSpec) {
				s.Config.AlertFiles = map[string]spec.RuleSet{"../../evil": {}}
			},
			wantCode: errors.ErrCodeInvalidSpec,
		},
		{
			name:     "missing version",
			mutate:   func(s *spec.ProvisioningSpec) { s.Artifact.Version = "" },
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := runSpec()
			tt.mutate(s)

			_, err := Preflight(s)
			if err == nil {
				t.Fatal("Preflight() expected error")
			}
			if code := errors.CodeOf(err); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}
