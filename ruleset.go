package wafengine

// WhitelistEntry is a merged whitelist_rule_t: one hashtable slot keyed by
// a composed name, holding every rule ID any source BasicRule whitelisted
// for that (name, zone) pair.
//
// Grounded on whitelist_rule_t and RuleParser::wlrFind /
// RuleParser::generateHashTables.
type WhitelistEntry struct {
	Name       string
	Zone       MatchZone
	IDs        []int
	URIOnly    bool
	TargetName bool
}

// RuleSet is the immutable output of Compile: four per-zone rule vectors,
// four whitelist hashtables, the regex-match-zone whitelist list, the
// globally-disabled rule list, and the tag-to-check-rule map.
//
// Once returned from Compile, a RuleSet is read-only and safe for
// unsynchronized concurrent use by any number of Scan calls, matching
// spec.md §5.
type RuleSet struct {
	URLRules     []*Rule
	ArgsRules    []*Rule
	HeadersRules []*Rule
	BodyRules    []*Rule

	WlURLHash     map[string]*WhitelistEntry
	WlArgsHash    map[string]*WhitelistEntry
	WlHeadersHash map[string]*WhitelistEntry
	WlBodyHash    map[string]*WhitelistEntry

	RxmzWhitelists []*Rule // BasicRules whose match zone had an "_X" location
	DisabledRules  []*Rule // BasicRules with no custom locations at all

	CheckRules map[string]CheckRule

	// SQLOracleRule and XSSOracleRule are the synthetic internal rules
	// (IDs 17/18) consulted by the runtime scanner's oracle step so that
	// whitelisting behaves identically to whitelisting a pattern rule.
	SQLOracleRule *Rule
	XSSOracleRule *Rule
}

func newRuleSet() *RuleSet {
	return &RuleSet{
		WlURLHash:     make(map[string]*WhitelistEntry),
		WlArgsHash:    make(map[string]*WhitelistEntry),
		WlHeadersHash: make(map[string]*WhitelistEntry),
		WlBodyHash:    make(map[string]*WhitelistEntry),
		CheckRules:    make(map[string]CheckRule),
	}
}

// whitelistHash returns the hashtable for the given zone, folding FILE_EXT
// to BODY as RuleParser::findWlInHash does.
func (rs *RuleSet) whitelistHash(zone MatchZone) map[string]*WhitelistEntry {
	switch foldFileExt(zone) {
	case ZoneBody:
		return rs.WlBodyHash
	case ZoneHeaders:
		return rs.WlHeadersHash
	case ZoneURL:
		return rs.WlURLHash
	case ZoneArgs:
		return rs.WlArgsHash
	default:
		return nil
	}
}

// insertMainRule inserts a MainRule into every zone vector its match-zone
// flags dictate, mirroring RuleParser::parseMainRules's if-chain: a rule
// with several zone flags (or several custom-location kinds) lands in
// several vectors.
func (rs *RuleSet) insertMainRule(r *Rule) {
	mz := &r.Zone
	if mz.Headers || mz.HeadersVar {
		rs.HeadersRules = append(rs.HeadersRules, r)
	}
	if mz.Body || mz.BodyVar {
		rs.BodyRules = append(rs.BodyRules, r)
	}
	if mz.URL {
		rs.URLRules = append(rs.URLRules, r)
	}
	if mz.Args || mz.ArgsVar {
		rs.ArgsRules = append(rs.ArgsRules, r)
	}
	if mz.HasCustomLocation() {
		for _, loc := range mz.CustomLocations {
			switch loc.Kind {
			case LocationArgsVar:
				if !mz.Args && !mz.ArgsVar {
					rs.ArgsRules = append(rs.ArgsRules, r)
				}
			case LocationBodyVar:
				if !mz.Body && !mz.BodyVar {
					rs.BodyRules = append(rs.BodyRules, r)
				}
			case LocationHeadersVar:
				if !mz.Headers && !mz.HeadersVar {
					rs.HeadersRules = append(rs.HeadersRules, r)
				}
			}
		}
	}
}

// Reserved internal rule IDs for the SQL/XSS oracles, per spec.md §3.
const (
	internalSQLRuleID = 17
	internalXSSRuleID = 18
)

// registerInternalRules seeds the two synthetic oracle rules so that
// whitelisting on IDs 17/18 behaves identically to whitelisting a regular
// pattern rule. Grounded on RuleParser::RuleParser's constructor.
func registerInternalRules(rs *RuleSet) {
	rs.SQLOracleRule = &Rule{
		ID:     internalSQLRuleID,
		Kind:   MainRuleKind,
		LogMsg: "libinjection sql",
		Scores: []Score{{Tag: "$SQL", Points: 8}},
	}
	rs.XSSOracleRule = &Rule{
		ID:     internalXSSRuleID,
		Kind:   MainRuleKind,
		LogMsg: "libinjection xss",
		Scores: []Score{{Tag: "$XSS", Points: 8}},
	}
}
