package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/promstack/provisioner/pkg/spec"
)

func TestExpandRulePaths(t *testing.T) {
	got := ExpandRulePaths([]string{"alert", "node", "blackbox"}, "/etc/prometheus")
	want := []string{
		"/etc/prometheus/rules/alert/*.rules",
		"/etc/prometheus/rules/node/*.rules",
		"/etc/prometheus/rules/blackbox/*.rules",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandRulePaths() = %v, want %v", got, want)
	}
}

func TestExpandRulePathsEmpty(t *testing.T) {
	got := ExpandRulePaths(nil, "/etc/prometheus")
	if got == nil || len(got) != 0 {
		t.Errorf("ExpandRulePaths(nil) = %v, want empty non-nil slice", got)
	}
}

func TestExpandRulePathsPreservesOrder(t *testing.T) {
	stems := []string{"z", "a", "m"}
	got := ExpandRulePaths(stems, "/etc/prometheus")
	for i, stem := range stems {
		if !strings.Contains(got[i], "/"+stem+"/") {
			t.Errorf("position %d = %q, want stem %q", i, got[i], stem)
		}
	}
}

func testSpec() *spec.ProvisioningSpec {
	s := &spec.ProvisioningSpec{
		Artifact: spec.Artifact{Version: "2.53.1", OS: "linux", RawArch: "x86_64"},
	}
	s.ApplyDefaults()
	return s
}

func TestCompose(t *testing.T) {
	s := testSpec()
	s.Config.Global = map[string]any{"scrape_interval": "30s", "external_labels": map[string]any{"site": "eu1"}}
	s.Config.RuleStems = []string{"alert"}
	s.Config.ScrapeConfigs = []map[string]any{{"job_name": "prometheus"}}
	s.Config.AlertmanagerTargets = []string{"am1:9093", "am2:9093"}

	c, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	global, ok := c.Document["global"].(map[string]any)
	if !ok {
		t.Fatalf("global section missing: %v", c.Document)
	}
	if global["scrape_interval"] != "30s" {
		t.Errorf("override lost: scrape_interval = %v", global["scrape_interval"])
	}
	if global["evaluation_interval"] != "15s" {
		t.Errorf("default lost: evaluation_interval = %v", global["evaluation_interval"])
	}

	wantRules := []string{"/etc/prometheus/rules/alert/*.rules"}
	if !reflect.DeepEqual(c.RuleFilePaths, wantRules) {
		t.Errorf("RuleFilePaths = %v, want %v", c.RuleFilePaths, wantRules)
	}
	if !reflect.DeepEqual(c.Document["rule_files"], wantRules) {
		t.Errorf("rule_files = %v, want %v", c.Document["rule_files"], wantRules)
	}

	alerting, ok := c.Document["alerting"].(map[string]any)
	if !ok {
		t.Fatalf("alerting section missing: %v", c.Document)
	}
	if _, ok := alerting["alertmanagers"]; !ok {
		t.Error("alertmanagers missing from alerting section")
	}
}

func TestComposeMinimalOmitsEmptySections(t *testing.T) {
	c, err := Compose(testSpec())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	for _, key := range []string{"rule_files", "scrape_configs", "remote_read", "remote_write", "alerting"} {
		if _, ok := c.Document[key]; ok {
			t.Errorf("empty section %q should be omitted", key)
		}
	}
	if _, ok := c.Document["global"]; !ok {
		t.Error("global section must always be present")
	}
}

func TestComposeGlobalOverrideReplacesDefaultWholesale(t *testing.T) {
	s := testSpec()
	s.Config.Global = map[string]any{"scrape_interval": map[string]any{"custom": true}}

	c, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	global := c.Document["global"].(map[string]any)
	if !reflect.DeepEqual(global["scrape_interval"], map[string]any{"custom": true}) {
		t.Errorf("override did not replace default wholesale: %v", global["scrape_interval"])
	}
	if global["evaluation_interval"] != "15s" {
		t.Errorf("unrelated default lost: %v", global["evaluation_interval"])
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := testSpec()
	s.Config.Global = map[string]any{"external_labels": map[string]any{"b": "2", "a": "1"}}
	s.Config.RuleStems = []string{"alert"}

	c, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	first, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Render() output differs between calls")
	}
	if !strings.Contains(string(first), "rule_files:") {
		t.Errorf("rendered output missing rule_files:\n%s", first)
	}
}
