package alerts

import (
	"strings"
	"testing"

	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

func TestGenerate(t *testing.T) {
	files := map[string]spec.RuleSet{
		"node":     {"groups": []any{map[string]any{"name": "node"}}},
		"blackbox": {"groups": []any{map[string]any{"name": "blackbox"}}},
	}

	got, err := Generate(files, "/etc/prometheus/rules")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(got))
	}

	// sorted by file name
	if got[0].FileName != "blackbox.rules" || got[1].FileName != "node.rules" {
		t.Errorf("unexpected order: %q, %q", got[0].FileName, got[1].FileName)
	}
	if got[1].Path != "/etc/prometheus/rules/node.rules" {
		t.Errorf("path = %q", got[1].Path)
	}
	if !strings.Contains(string(got[1].Content), "name: node") {
		t.Errorf("unexpected content:\n%s", got[1].Content)
	}
}

func TestGenerateNormalizesNames(t *testing.T) {
	files := map[string]spec.RuleSet{
		"Node.Rules": {"groups": []any{}},
	}

	got, err := Generate(files, "/etc/prometheus/rules")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got[0].FileName != "node.rules" {
		t.Errorf("FileName = %q, want lowercased with single suffix", got[0].FileName)
	}
}

func TestGenerateDuplicateAfterNormalization(t *testing.T) {
	files := map[string]spec.RuleSet{
		"node":       {"groups": []any{}},
		"Node":       {"groups": []any{}},
		"unaffected": {"groups": []any{}},
	}

	_, err := Generate(files, "/etc/prometheus/rules")
	if err == nil {
		t.Fatal("Generate() expected duplicate error")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeDuplicateAlertFile {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeDuplicateAlertFile)
	}
}

func TestGenerateRejectsPathSeparators(t *testing.T) {
	tests := []string{
		"../../etc/passwd",
		"sub/dir",
		`win\dir`,
		"/absolute",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			files := map[string]spec.RuleSet{name: {}}

			_, err := Generate(files, "/etc/prometheus/rules")
			if err == nil {
				t.Fatal("Generate() expected error for name with path separator")
			}
			if code := errors.CodeOf(err); code != errors.ErrCodeInvalidSpec {
				t.Errorf("code = %q, want %q", code, errors.ErrCodeInvalidSpec)
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	got, err := Generate(nil, "/etc/prometheus/rules")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got != nil {
		t.Errorf("Generate(nil) = %v, want nil", got)
	}
}

func TestGenerateDeterministicOrder(t *testing.T) {
	files := map[string]spec.RuleSet{
		"c": {}, "a": {}, "b": {},
	}

	first, err := Generate(files, "/rules")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(files, "/rules")
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].FileName != second[i].FileName {
			t.Fatalf("order differs between runs at %d: %q vs %q", i, first[i].FileName, second[i].FileName)
		}
	}
}
