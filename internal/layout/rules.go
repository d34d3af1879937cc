package layout

import "fmt"

// CopyRule describes one class of artifacts to relocate. Dst and Src are
// slash-separated and relative to the identifier directory of the package
// and build trees respectively.
type CopyRule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Dst     string `yaml:"dst" json:"dst"`
	Src     string `yaml:"src" json:"src"`
}

func (r CopyRule) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.Pattern, r.Src, r.Dst)
}

// defaultRules is the rule table for the kernel package. Order matters only
// in that later rules overwrite files copied by earlier ones.
var defaultRules = []CopyRule{
	{Pattern: "*/*", Dst: "include", Src: "include"},
	{Pattern: "async++.h", Dst: "include", Src: "include"},
	{Pattern: "*.a", Dst: "lib", Src: "lib"},
	{Pattern: "*.so", Dst: "lib", Src: "lib"},
	{Pattern: "*.dylib", Dst: "lib", Src: "lib"},
	{Pattern: "*.dll", Dst: "lib", Src: "lib"},
	{Pattern: "*.lib", Dst: "lib", Src: "lib"},
	{Pattern: "*.pdb", Dst: "lib", Src: "lib"},
	{Pattern: "*.dll", Dst: "lib/debug", Src: "lib/debug"},
	{Pattern: "*.lib", Dst: "lib/debug", Src: "lib/debug"},
	{Pattern: "*.pdb", Dst: "lib/debug", Src: "lib/debug"},
	{Pattern: "*.a", Dst: "lib", Src: "lib64"},
	{Pattern: "*.pc", Dst: "lib", Src: "lib64"},
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []CopyRule {
	rules := make([]CopyRule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// ValidateRules checks that every rule has a pattern that compiles and
// relative, non-escaping paths.
func ValidateRules(rules []CopyRule) error {
	for i, r := range rules {
		if r.Pattern == "" {
			return fmt.Errorf("rule %d: empty pattern", i)
		}
		if _, err := compilePattern(r.Pattern); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		for _, p := range []string{r.Dst, r.Src} {
			if !isLocal(p) {
				return fmt.Errorf("rule %d: path %q must be relative and stay inside the tree", i, p)
			}
		}
	}
	return nil
}
