package branding

import "testing"

func TestDefaults(t *testing.T) {
	if CLIName() != "takpkg" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if HomeDir() != ".takpkg" {
		t.Errorf("HomeDir() = %q", HomeDir())
	}
	if EnvPrefix() != "TAKPKG" {
		t.Errorf("EnvPrefix() = %q", EnvPrefix())
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("version"); got != "TAKPKG_VERSION" {
		t.Errorf("EnvVar(version) = %q, want TAKPKG_VERSION", got)
	}
}
