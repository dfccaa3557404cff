package artifact

import (
	"testing"

	"github.com/promstack/provisioner/pkg/errors"
)

func TestResolveArch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"x86_64", "x86_64", "amd64", false},
		{"amd64 passthrough", "amd64", "amd64", false},
		{"i386", "i386", "386", false},
		{"arm64 unsupported", "arm64", "", true},
		{"empty", "", "", true},
		{"case sensitive", "X86_64", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveArch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveArch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.HasCode(err, errors.ErrCodeUnsupportedArchitecture) {
					t.Errorf("ResolveArch(%q) error code = %q, want UNSUPPORTED_ARCHITECTURE",
						tt.input, errors.CodeOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ResolveArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
