package wafengine

import (
	"regexp"
	"strings"
	"sync"
)

// Pattern is the tagged-variant match predicate a Rule carries: either a
// literal string (case-insensitive containment) or a compiled regular
// expression. Grounded on http_rule_t::br.{str,rx} in RuleParser.cpp.
type Pattern interface {
	// Test reports whether the pattern is found in s.
	Test(s string) bool
	// String returns the original source text, for logging and dumps.
	String() string
}

type literalPattern struct {
	raw    string
	lower  string
}

func newLiteralPattern(raw string) *literalPattern {
	return &literalPattern{raw: raw, lower: strings.ToLower(raw)}
}

func (p *literalPattern) Test(s string) bool {
	return strings.Contains(strings.ToLower(s), p.lower)
}

func (p *literalPattern) String() string { return p.raw }

type regexPattern struct {
	raw string
	re  *regexp.Regexp
}

func (p *regexPattern) Test(s string) bool {
	// Runtime regex failures must never abort a scan (spec.md §7); Go's
	// regexp never errors at match time, but a defensive recover keeps
	// that guarantee if future pattern engines can panic.
	defer func() { _ = recover() }()
	return p.re.MatchString(s)
}

func (p *regexPattern) String() string { return p.raw }

// regexCache deduplicates regex compilation across rules and custom
// locations that share the same source text during a single Compile call.
//
// Adapted from the teacher's RuleCache (types.go): its separate Get/Set pair
// is folded into one look-up-then-store compile method, and it is scoped to compile time rather than caddy module lifetime, since a
// RuleSet is immutable once built and never recompiles a pattern again.
type regexCache struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func newRegexCache() *regexCache {
	return &regexCache{cache: make(map[string]*regexp.Regexp)}
}

func (c *regexCache) compile(src string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.cache[src]; ok {
		return re, nil
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	c.cache[src] = re
	return re, nil
}
