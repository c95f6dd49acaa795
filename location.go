package wafengine

import (
	"regexp"
	"strings"
)

// CustomLocation narrows a rule or whitelist to a specific named target:
// an argument name, a header name, a body variable name, or a URL. It is
// either a lowercased literal or a compiled regex (the "_X" suffixed mz
// tokens), never both.
//
// Grounded on custom_rule_location_t in original_source/RuleParser.cpp.
type CustomLocation struct {
	Kind      LocationKind
	IsRegex   bool
	Target    string // lowercased literal target, set when !IsRegex
	TargetRx  *regexp.Regexp
	rawTarget string // original-case source text, for dumps/logging
}

// Matches reports whether candidate (a variable name, header name, or the
// request URI) satisfies this custom location.
func (c *CustomLocation) Matches(candidate string) bool {
	if c.IsRegex {
		if c.TargetRx == nil {
			return false
		}
		defer func() { _ = recover() }()
		return c.TargetRx.MatchString(candidate)
	}
	return strings.EqualFold(candidate, c.Target)
}
