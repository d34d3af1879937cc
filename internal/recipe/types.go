package recipe

import (
	"github.com/takkernel/takpkg/internal/layout"
	"github.com/takkernel/takpkg/internal/platform"
)

// DefaultFileName is the recipe file looked up in the working directory.
const DefaultFileName = "takpkg.yaml"

// Recipe describes a package.
type Recipe struct {
	Name        string                `yaml:"name" json:"name"`
	Version     string                `yaml:"version,omitempty" json:"version,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	License     string                `yaml:"license,omitempty" json:"license,omitempty"`
	URL         string                `yaml:"url,omitempty" json:"url,omitempty"`
	Platforms   []platform.Descriptor `yaml:"platforms,omitempty" json:"platforms,omitempty"`
	Rules       []layout.CopyRule     `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Default returns the recipe used when no takpkg.yaml exists.
func Default() *Recipe {
	return &Recipe{
		Name:        "takkernel",
		Description: "TAK kernel native libraries",
		Platforms: []platform.Descriptor{
			{OS: platform.Windows, Arch: platform.X86_64},
			{OS: platform.Windows, Arch: platform.X86},
			{OS: platform.Android, Arch: platform.ArmV8},
			{OS: platform.Android, Arch: platform.ArmV7},
			{OS: platform.Android, Arch: platform.X86},
			{OS: platform.Android, Arch: platform.X86_64},
			{OS: platform.Macos, Arch: platform.X86_64},
			{OS: platform.Linux, Arch: platform.X86_64},
		},
	}
}

// CopyRules returns the recipe's rule table, falling back to the built-in
// table when the recipe declares none.
func (r *Recipe) CopyRules() []layout.CopyRule {
	if len(r.Rules) == 0 {
		return layout.DefaultRules()
	}
	out := make([]layout.CopyRule, len(r.Rules))
	copy(out, r.Rules)
	return out
}
