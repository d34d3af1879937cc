package layout

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// compilePattern translates an fnmatch-style pattern into an anchored
// regular expression. Unlike path.Match, '*' also matches '/', so "*.a"
// matches at any depth and "*/*" matches anything inside a subdirectory.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			// A leading '!' negates and a ']' right after the opening
			// bracket (or the '!') is a literal member.
			j := i + 1
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			end := strings.IndexByte(pattern[j:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			end += j
			writeClass(&b, pattern[i+1:end])
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// writeClass emits a bracket expression. Only a leading '!' negates; '^'
// and brackets inside the class are literal members.
func writeClass(b *strings.Builder, class string) {
	b.WriteByte('[')
	if strings.HasPrefix(class, "!") {
		b.WriteByte('^')
		class = class[1:]
	}
	for i := 0; i < len(class); i++ {
		switch c := class[i]; c {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(']')
}

// Match reports whether the slash-separated relative path name matches
// pattern.
func Match(pattern, name string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(name), nil
}

// isLocal reports whether p is a relative slash path that does not climb
// out of its root.
func isLocal(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return false
	}
	clean := path.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
