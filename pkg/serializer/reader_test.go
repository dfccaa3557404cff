package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{"json", "spec.json", FormatJSON},
		{"yaml", "spec.yaml", FormatYAML},
		{"yml", "spec.yml", FormatYAML},
		{"uppercase", "SPEC.YAML", FormatYAML},
		{"unknown defaults to yaml", "spec.conf", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReaderDeserializeJSON(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"prometheus","port":9090}`))
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}

	var got struct {
		Name string `json:"name"`
		Port int    `json:"port"`
	}
	if err := r.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if got.Name != "prometheus" || got.Port != 9090 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestReaderDeserializeYAML(t *testing.T) {
	r, err := NewReader(FormatYAML, strings.NewReader("name: prometheus\nport: 9090\n"))
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}

	var got struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	}
	if err := r.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if got.Name != "prometheus" || got.Port != 9090 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestNewReaderUnknownFormat(t *testing.T) {
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("name: promd\nretention: 360h\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	type cfg struct {
		Name      string `yaml:"name"`
		Retention string `yaml:"retention"`
	}

	got, err := FromFile[cfg](path)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	if got.Name != "promd" || got.Retention != "360h" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile[map[string]any]("/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderCloseIdempotent(t *testing.T) {
	var r *Reader
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader should be nil, got %v", err)
	}

	r2, err := NewReader(FormatJSON, strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	if err := r2.Close(); err != nil {
		t.Errorf("first Close error: %v", err)
	}
	if err := r2.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}
