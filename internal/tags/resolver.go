// Package tags decides scenario inclusion from tag names. The parser knows
// nothing about execution environments; this is the only place tag
// semantics live.
package tags

import "strings"

// SkipPrefix marks environment-exclusion tags, e.g. skip_safari.
const SkipPrefix = "skip_"

// DisabledTag unconditionally excludes a scenario regardless of environment.
const DisabledTag = "disabled"

// Enabled reports whether a scenario with the given tags should run in the
// named environment. Unknown tags are inert; no tag can force-enable.
func Enabled(tagNames []string, env string) bool {
	enabled, _ := Disposition(tagNames, env)
	return enabled
}

// Disposition is Enabled plus a human-readable reason when excluded.
func Disposition(tagNames []string, env string) (bool, string) {
	for _, tag := range tagNames {
		if strings.EqualFold(tag, DisabledTag) {
			return false, "tagged @" + tag
		}
		// An empty environment matches no exclusion tag; a tag literally
		// named "skip_" is inert.
		if env != "" && strings.EqualFold(tag, SkipPrefix+env) {
			return false, "excluded by @" + tag + " in environment " + env
		}
	}
	return true, ""
}
