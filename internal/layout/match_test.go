package layout

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.a", "libfoo.a", true},
		{"*.a", "sub/libfoo.a", true},
		{"*.a", "libfoo.so", false},
		{"*.a", "libfoo.a.bak", false},
		{"*/*", "tak/engine.h", true},
		{"*/*", "tak/sub/engine.h", true},
		{"*/*", "engine.h", false},
		{"async++.h", "async++.h", true},
		{"async++.h", "asyncc.h", false},
		{"async++.h", "sub/async++.h", false},
		{"lib?.a", "libx.a", true},
		{"lib?.a", "libxy.a", false},
		{"lib[xy].a", "liby.a", true},
		{"lib[!xy].a", "liby.a", false},
		{"lib[!xy].a", "libz.a", true},
		{"lib[x.a", "lib[x.a", true},
		{"*.so.*", "libtak.so.1", true},
		{"lib[^x].a", "lib^.a", true},
		{"lib[^x].a", "liby.a", false},
		{"lib[]x].a", "lib].a", true},
		{"lib[]x].a", "libx.a", true},
		{"lib[!]x].a", "lib].a", false},
		{"lib[!]x].a", "libz.a", true},
		{"lib[!].a", "lib[!].a", true},
		{"lib[].a", "lib[].a", true},
		{"lib[a-c].a", "libb.a", true},
		{"lib[a-c].a", "libd.a", false},
	}

	for _, tt := range tests {
		got, err := Match(tt.pattern, tt.name)
		if err != nil {
			t.Fatalf("Match(%q, %q) error: %v", tt.pattern, tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		rule    CopyRule
		wantErr bool
	}{
		{"default shape", CopyRule{"*.a", "lib", "lib64"}, false},
		{"nested dst", CopyRule{"*.pdb", "lib/debug", "lib/debug"}, false},
		{"empty pattern", CopyRule{"", "lib", "lib"}, true},
		{"absolute src", CopyRule{"*.a", "lib", "/usr/lib"}, true},
		{"parent dst", CopyRule{"*.a", "../lib", "lib"}, true},
		{"backslash", CopyRule{"*.a", `lib\debug`, "lib"}, true},
		{"empty src", CopyRule{"*.a", "lib", ""}, true},
		{"reversed range", CopyRule{"lib[z-a].a", "lib", "lib"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules([]CopyRule{tt.rule})
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if err := ValidateRules(DefaultRules()); err != nil {
		t.Errorf("default rules invalid: %v", err)
	}
}
