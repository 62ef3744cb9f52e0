// Package rewrite implements the ProcessSegment to Operation schema
// migration as an ordered catalog of regex rewrite phases over a single
// document.
package rewrite

import "regexp"

// Rule is one pattern/replacement pair with the human-readable
// description that ends up in the change report. Replacements may
// reference capture groups of Pattern with ${n} syntax.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Description string

	// Counted selects count-checked reporting: the change record for
	// this rule carries the exact number of occurrences replaced.
	// Presence-checked rules (Counted false) report the description
	// alone, however many occurrences there were.
	Counted bool
}

// Apply replaces every occurrence of the rule's pattern in text. It
// returns the resulting text, whether the pattern matched at all, and
// the occurrence count. When the pattern does not match, text comes
// back unchanged.
func (r Rule) Apply(text string) (string, bool, int) {
	count := len(r.Pattern.FindAllStringIndex(text, -1))
	if count == 0 {
		return text, false, 0
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement), true, count
}
