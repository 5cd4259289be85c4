package variation

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Interpolate replaces every {{name}} placeholder with its value. Unresolved
// placeholders are left verbatim; interpolation never fails.
func Interpolate(tmpl string, vars *Variables) string {
	if vars == nil || tmpl == "" {
		return tmpl
	}
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		if val, ok := vars.Lookup(sub[1]); ok {
			return val
		}
		return match
	})
}

// Placeholders lists the distinct placeholder names in tmpl in order of first use.
func Placeholders(tmpl string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(tmpl, -1)
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
