package spec

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/promstack/provisioner/pkg/defaults"
	"github.com/promstack/provisioner/pkg/errors"
)

func minimalSpec() *ProvisioningSpec {
	return &ProvisioningSpec{
		Artifact: Artifact{
			Version: "2.53.1",
			OS:      "linux",
			RawArch: "x86_64",
		},
	}
}

func TestApplyDefaults(t *testing.T) {
	s := minimalSpec()
	s.ApplyDefaults()

	if s.Identity.User != defaults.DaemonUser {
		t.Errorf("user = %q, want %q", s.Identity.User, defaults.DaemonUser)
	}
	if s.Locations.ConfigDir != defaults.ConfigDir {
		t.Errorf("configDir = %q, want %q", s.Locations.ConfigDir, defaults.ConfigDir)
	}
	if s.Artifact.InstallMethod != InstallMethodURL {
		t.Errorf("installMethod = %q, want %q", s.Artifact.InstallMethod, InstallMethodURL)
	}
	if s.Artifact.Source.URLBase != defaults.DownloadURLBase {
		t.Errorf("urlBase = %q, want %q", s.Artifact.Source.URLBase, defaults.DownloadURLBase)
	}
	if s.Service.Ensure != ServiceRunning {
		t.Errorf("ensure = %q, want %q", s.Service.Ensure, ServiceRunning)
	}
	if s.Config.StorageRetention != defaults.StorageRetention {
		t.Errorf("retention = %q, want %q", s.Config.StorageRetention, defaults.StorageRetention)
	}

	// required facts are never defaulted
	empty := &ProvisioningSpec{}
	empty.ApplyDefaults()
	if empty.Artifact.Version != "" || empty.Artifact.OS != "" || empty.Artifact.RawArch != "" {
		t.Error("version, os, and arch must not be defaulted")
	}
}

func TestApplyDefaultsPreservesOperatorValues(t *testing.T) {
	s := minimalSpec()
	s.Identity.User = "promuser"
	s.Locations.ConfigDir = "/opt/prom/etc"
	s.ApplyDefaults()

	if s.Identity.User != "promuser" {
		t.Errorf("user = %q, want operator value preserved", s.Identity.User)
	}
	if s.Locations.ConfigDir != "/opt/prom/etc" {
		t.Errorf("configDir = %q, want operator value preserved", s.Locations.ConfigDir)
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	s := minimalSpec()
	s.ApplyDefaults()
	first := *s
	s.ApplyDefaults()
	if !reflect.DeepEqual(*s, first) {
		t.Error("second ApplyDefaults changed the spec")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ProvisioningSpec)
		wantCode errors.ErrorCode
	}{
		{
			name:   "valid after defaults",
			mutate: func(s *ProvisioningSpec) {},
		},
		{
			name:     "missing version",
			mutate:   func(s *ProvisioningSpec) { s.Artifact.Version = "" },
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
		{
			name:     "missing os",
			mutate:   func(s *ProvisioningSpec) { s.Artifact.OS = "" },
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
		{
			name:     "missing arch",
			mutate:   func(s *ProvisioningSpec) { s.Artifact.RawArch = "" },
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
		{
			name: "url install without url base",
			mutate: func(s *ProvisioningSpec) {
				s.Artifact.Source.URLBase = ""
			},
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
		{
			name: "explicit url needs no base",
			mutate: func(s *ProvisioningSpec) {
				s.Artifact.Source.URLBase = ""
				s.Artifact.Source.Extension = ""
				s.Artifact.Source.ExplicitURL = "https://example.com/prometheus.tar.gz"
			},
		},
		{
			name: "package install without package name",
			mutate: func(s *ProvisioningSpec) {
				s.Artifact.InstallMethod = InstallMethodPackage
				s.Artifact.PackageName = ""
			},
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
		{
			name: "unknown install method",
			mutate: func(s *ProvisioningSpec) {
				s.Artifact.InstallMethod = InstallMethod("pixie-dust")
			},
			wantCode: errors.ErrCodeInvalidSpec,
		},
		{
			name: "unknown service ensure",
			mutate: func(s *ProvisioningSpec) {
				s.Service.Ensure = ServiceEnsure("paused")
			},
			wantCode: errors.ErrCodeInvalidSpec,
		},
		{
			name: "missing config dir",
			mutate: func(s *ProvisioningSpec) {
				s.Locations.ConfigDir = ""
			},
			wantCode: errors.ErrCodeMissingRequiredParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := minimalSpec()
			s.ApplyDefaults()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if code := errors.CodeOf(err); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestFlagDefaults(t *testing.T) {
	s := minimalSpec()
	if !s.RestartOnChange() || !s.ManageService() || !s.ServiceEnabled() || !s.PurgeConfigDir() {
		t.Error("all service flags must default to true")
	}

	f := false
	s.Service.RestartOnChange = &f
	s.Service.Manage = &f
	if s.RestartOnChange() {
		t.Error("RestartOnChange() = true with explicit false")
	}
	if s.ManageService() {
		t.Error("ManageService() = true with explicit false")
	}
}

func TestSourcePkgName(t *testing.T) {
	s := minimalSpec()
	s.Artifact.PackageName = "prometheus"
	if got := s.SourcePkgName(); got != "prometheus" {
		t.Errorf("SourcePkgName() = %q, want fallback to packageName", got)
	}

	s.Artifact.Source.PkgName = "prometheus-custom"
	if got := s.SourcePkgName(); got != "prometheus-custom" {
		t.Errorf("SourcePkgName() = %q, want source override", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.yaml")
	doc := `
artifact:
  version: "2.53.1"
  os: linux
  arch: x86_64
service:
  restartOnChange: false
config:
  ruleStems: [node, blackbox]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Artifact.Version != "2.53.1" {
		t.Errorf("version = %q", s.Artifact.Version)
	}
	if s.RestartOnChange() {
		t.Error("restartOnChange should be false")
	}
	if s.Service.Name != defaults.ServiceName {
		t.Errorf("service name default missing: %q", s.Service.Name)
	}
	if len(s.Config.RuleStems) != 2 || s.Config.RuleStems[0] != "node" {
		t.Errorf("ruleStems = %v", s.Config.RuleStems)
	}
}

func TestLoadDefersValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.yaml")
	if err := os.WriteFile(path, []byte("artifact:\n  os: linux\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// facts are merged in after loading, so an incomplete spec must load
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	err = s.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for missing version")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeMissingRequiredParameter {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeMissingRequiredParameter)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/host.yaml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
