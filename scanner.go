package wafengine

import "strings"

// ScannerOptions toggles the three request-scan behaviors spec.md §6
// exposes as directives: LearningMode (downgrade BLOCK/DROP to LOG),
// LibinjectionSQL (enable the rule-17 SQL oracle), and LibinjectionXSS
// (enable the rule-18 XSS oracle).
type ScannerOptions struct {
	LearningMode    bool
	LibinjectionSQL bool
	LibinjectionXSS bool
}

// RuntimeScanner evaluates an immutable RuleSet against inbound requests.
// A RuntimeScanner holds no per-request state of its own — all mutable
// state lives in the ScanState returned alongside each Verdict — so one
// RuntimeScanner is safely shared across goroutines, per spec.md §5.
//
// Grounded on CApplication's per-request scan loop in
// original_source/mod_defender.cpp's defender_handler.
type RuntimeScanner struct {
	Oracle Oracle
	Opts   ScannerOptions
}

// NewRuntimeScanner builds a scanner. A nil oracle disables rules 17/18
// regardless of Opts.
func NewRuntimeScanner(oracle Oracle, opts ScannerOptions) *RuntimeScanner {
	if oracle == nil {
		oracle = NoopOracle{}
	}
	return &RuntimeScanner{Oracle: oracle, Opts: opts}
}

// Scan walks URL, ARGS, HEADERS, then BODY in that order, recording every
// rule hit (after whitelist resolution) into a fresh ScanState, then
// evaluates the check rules to produce a Verdict. A nil RuleSet produces
// an Unavailable verdict rather than panicking, mirroring
// defender_handler's HTTP_SERVICE_UNAVAILABLE response when post_config
// never ran.
func (s *RuntimeScanner) Scan(rs *RuleSet, req *Request, requestID string) *Verdict {
	if rs == nil {
		return &Verdict{Unavailable: true, State: newScanState(requestID)}
	}

	state := newScanState(requestID)

	s.scanURL(rs, req, state)
	s.scanPairs(rs, req.URI, req.Args, rs.ArgsRules, ZoneArgs, state)
	s.scanPairs(rs, req.URI, req.Headers, rs.HeadersRules, ZoneHeaders, state)
	if req.isBodyScannable() {
		s.scanPairs(rs, req.URI, req.bodyPairs(), rs.BodyRules, ZoneBody, state)
	}

	s.scanOracle(rs, req, state)

	verdict := EvaluateCheckRules(rs, state)
	if s.Opts.LearningMode {
		verdict = ApplyLearningMode(verdict)
	}
	return verdict
}

// scanURL tests every URLRules pattern against the request URI. There is
// no (name, value) split in the URL zone — the whole URI is the
// candidate — so TargetName/custom-location-by-name logic never applies
// here; only Negative and a custom $URL: / $URL_X: location can narrow it.
func (s *RuntimeScanner) scanURL(rs *RuleSet, req *Request, state *ScanState) {
	for _, rule := range rs.URLRules {
		if !s.ruleLocationURLMatches(rule, req.URI) {
			continue
		}
		if !s.candidateMatches(rule, req.URI) {
			continue
		}
		if isRuleWhitelisted(rs, req.URI, rule, "", ZoneURL, false) {
			continue
		}
		state.recordHit(rule, ZoneURL, "")
	}
}

// scanPairs tests every rule in a zone's vector against every (name,
// value) candidate the zone supplies, honoring each rule's TargetName
// flag and any custom-location name filter.
func (s *RuntimeScanner) scanPairs(rs *RuleSet, uri string, pairs []Pair, rules []*Rule, zone MatchZone, state *ScanState) {
	for _, rule := range rules {
		for _, pair := range pairs {
			if !s.ruleAppliesToName(rule, zone, pair.Name) {
				continue
			}
			if !s.ruleLocationURLMatches(rule, uri) {
				continue
			}

			candidate := pair.Value
			if rule.Zone.TargetName {
				candidate = pair.Name
			}

			if !s.candidateMatches(rule, candidate) {
				continue
			}
			if isRuleWhitelisted(rs, uri, rule, pair.Name, zone, rule.Zone.TargetName) {
				continue
			}
			state.recordHit(rule, zone, pair.Name)
		}
	}
}

// ruleAppliesToName reports whether a rule with a custom-location list
// restricted to specific variable names should be tested against this
// pair's name at all. A rule with no custom locations for this zone (only
// a coarse zone flag) applies to every name in that zone.
func (s *RuntimeScanner) ruleAppliesToName(rule *Rule, zone MatchZone, name string) bool {
	var coarse bool
	switch zone {
	case ZoneArgs:
		coarse = rule.Zone.Args
	case ZoneHeaders:
		coarse = rule.Zone.Headers
	case ZoneBody:
		coarse = rule.Zone.Body
	}
	if coarse {
		return true
	}

	var kind LocationKind
	switch zone {
	case ZoneArgs:
		kind = LocationArgsVar
	case ZoneHeaders:
		kind = LocationHeadersVar
	case ZoneBody:
		kind = LocationBodyVar
	default:
		return false
	}

	matched := false
	for _, loc := range rule.Zone.CustomLocations {
		if loc.Kind != kind {
			continue
		}
		if loc.Matches(name) {
			matched = true
		}
	}
	return matched
}

// ruleLocationURLMatches gates a rule carrying a $URL custom location
// (e.g. "mz:ARGS|$URL:/foo") to only fire on requests whose URI matches
// that location: per spec.md, URL custom locations are tested against the
// request URL, not the variable name, so they narrow a zone rule to
// specific paths rather than specific ARGS/HEADERS/BODY names. A rule
// with no LocationURL entry is unconstrained by URI.
func (s *RuntimeScanner) ruleLocationURLMatches(rule *Rule, uri string) bool {
	hasURLLocation := false
	for _, loc := range rule.Zone.CustomLocations {
		if loc.Kind != LocationURL {
			continue
		}
		hasURLLocation = true
		if loc.Matches(uri) {
			return true
		}
	}
	return !hasURLLocation
}

// candidateMatches applies the rule's pattern, honoring the Negative flag
// (the MainRule "negative" prefix token): a negative rule fires when its pattern is
// ABSENT from the candidate.
func (s *RuntimeScanner) candidateMatches(rule *Rule, candidate string) bool {
	if rule.Pattern == nil {
		return false
	}
	hit := rule.Pattern.Test(candidate)
	if rule.Zone.Negative {
		return !hit
	}
	return hit
}

// scanOracle runs the SQL/XSS heuristic oracle over every ARGS and BODY
// value (spec.md §4.3 step 5 restricts the oracle to these two zones —
// headers and the URL are not passed to it, since free-form header and
// path text produce excessive false positives for injection heuristics).
func (s *RuntimeScanner) scanOracle(rs *RuleSet, req *Request, state *ScanState) {
	s.scanOraclePairs(rs, req.URI, req.Args, ZoneArgs, state)
	if req.isBodyScannable() {
		s.scanOraclePairs(rs, req.URI, req.bodyPairs(), ZoneBody, state)
	}
}

func (s *RuntimeScanner) scanOraclePairs(rs *RuleSet, uri string, pairs []Pair, zone MatchZone, state *ScanState) {
	if !s.Opts.LibinjectionSQL && !s.Opts.LibinjectionXSS {
		return
	}
	for _, pair := range pairs {
		if strings.TrimSpace(pair.Value) == "" {
			continue
		}
		if s.Opts.LibinjectionSQL && rs.SQLOracleRule != nil && s.Oracle.IsSQLi(pair.Value) {
			if !isRuleWhitelisted(rs, uri, rs.SQLOracleRule, pair.Name, zone, false) {
				state.recordHit(rs.SQLOracleRule, zone, pair.Name)
			}
		}
		if s.Opts.LibinjectionXSS && rs.XSSOracleRule != nil && s.Oracle.IsXSS(pair.Value) {
			if !isRuleWhitelisted(rs, uri, rs.XSSOracleRule, pair.Name, zone, false) {
				state.recordHit(rs.XSSOracleRule, zone, pair.Name)
			}
		}
	}
}
