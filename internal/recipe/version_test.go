package recipe

import "testing"

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "5.1.0", "5.1.0", false},
		{"v prefix", "v5.1.0", "5.1.0", false},
		{"short", "5.1", "5.1.0", false},
		{"prerelease", "5.2.0-rc1", "5.2.0-rc1", false},
		{"whitespace", " 5.1.0\n", "5.1.0", false},
		{"empty", "", "", true},
		{"garbage", "main", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVersion(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveVersion(t *testing.T) {
	r := &Recipe{Name: "takkernel", Version: "5.0.0"}

	got, err := r.ResolveVersion("")
	if err != nil || got != "5.0.0" {
		t.Errorf("ResolveVersion(\"\") = %q, %v; want 5.0.0", got, err)
	}

	got, err = r.ResolveVersion("v5.1.2")
	if err != nil || got != "5.1.2" {
		t.Errorf("ResolveVersion(v5.1.2) = %q, %v; want 5.1.2", got, err)
	}

	empty := &Recipe{Name: "takkernel"}
	if _, err := empty.ResolveVersion(""); err == nil {
		t.Error("expected error when no version is available")
	}
}
