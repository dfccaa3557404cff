package version

import (
	"testing"

	"github.com/promstack/provisioner/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{"simple", "1.2.3", New(1, 2, 3), false},
		{"zeros", "0.0.0", New(0, 0, 0), false},
		{"v prefix", "v2.3.1", New(2, 3, 1), false},
		{"boundary", "1.0.0", New(1, 0, 0), false},
		{"large components", "10.20.30", New(10, 20, 30), false},
		{"empty", "", Version{}, true},
		{"major only", "1", Version{}, true},
		{"major.minor only", "1.2", Version{}, true},
		{"four components", "1.2.3.4", Version{}, true},
		{"non-numeric", "1.2.x", Version{}, true},
		{"empty component", "1..3", Version{}, true},
		{"negative component", "1.-2.3", Version{}, true},
		{"suffix", "1.2.3-rc1", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.HasCode(err, errors.ErrCodeInvalidVersionFormat) {
					t.Errorf("Parse(%q) error code = %q, want INVALID_VERSION_FORMAT", tt.input, errors.CodeOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustParse to panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		v     Version
		other Version
		want  int
	}{
		{"equal", New(1, 2, 3), New(1, 2, 3), 0},
		{"major older", New(0, 9, 9), New(1, 0, 0), -1},
		{"major newer", New(2, 0, 0), New(1, 9, 9), 1},
		{"minor older", New(1, 1, 5), New(1, 2, 0), -1},
		{"minor newer", New(1, 3, 0), New(1, 2, 9), 1},
		{"patch older", New(1, 2, 2), New(1, 2, 3), -1},
		{"patch newer", New(1, 2, 4), New(1, 2, 3), 1},
		{"semantic not lexicographic", New(0, 10, 0), New(0, 9, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Compare(tt.other); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.v, tt.other, got, tt.want)
			}
		})
	}
}

func TestEqualsOrNewer(t *testing.T) {
	boundary := New(1, 0, 0)

	tests := []struct {
		name string
		v    Version
		want bool
	}{
		{"below boundary", New(0, 9, 0), false},
		{"exactly boundary", New(1, 0, 0), true},
		{"above boundary", New(2, 3, 1), true},
		{"patch above", New(1, 0, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.EqualsOrNewer(boundary); got != tt.want {
				t.Errorf("EqualsOrNewer(%v, %v) = %v, want %v", tt.v, boundary, got, tt.want)
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	if New(1, 0, 0).IsNewer(New(1, 0, 0)) {
		t.Error("equal versions should not be newer")
	}
	if !New(1, 0, 1).IsNewer(New(1, 0, 0)) {
		t.Error("1.0.1 should be newer than 1.0.0")
	}
}

func TestString(t *testing.T) {
	if got := New(2, 3, 1).String(); got != "2.3.1" {
		t.Errorf("String() = %q, want %q", got, "2.3.1")
	}
}
