// Package wafengine implements a Naxsi-style web application firewall rule
// engine: a declarative rule compiler plus a runtime scanner that evaluates
// HTTP requests against compiled rules and whitelists to produce a
// per-request verdict (allow, log, block, or drop).
//
// The package is organized around two phases:
//
//   - Compile, run once at startup, turns three directive streams
//     (MainRule, CheckRule, BasicRule) into an immutable *RuleSet.
//   - Scan, run once per request, walks the URL, query arguments, headers,
//     and body of a *Request against the compiled RuleSet and returns a
//     *Verdict.
//
// This package implements the rule-evaluation core plus a few optional
// companions:
//   - Regex and literal pattern matching across URL, ARGS, HEADERS, BODY
//   - Whitelist resolution by URI, variable name, and rule ID
//   - Score accumulation and threshold-based disposition
//   - Hot-reload of compiled rule sets and optional IP/GeoIP enrichment
//
// It does not embed an HTTP server, does not tokenize configuration files,
// and does not rotate log files — those are host responsibilities. SQL/XSS
// heuristics are pluggable via the Oracle interface.
package wafengine
