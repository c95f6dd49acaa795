package wafengine

import "strings"

// matchType distinguishes which hashtable lookup produced a candidate
// WhitelistEntry, used by accepts to decide whether the entry actually
// applies. Grounded on enum MATCH_TYPE in RuleParser.cpp.
type matchType int

const (
	nameOnly matchType = iota
	uriOnly
	mixed
)

// ruleIDMatches is RuleParser::checkIds: id 0 matches everything; a
// negative id -K (honored only once matchID >= 1000) switches into
// negative mode, which matches everything except an explicit -matchID.
func ruleIDMatches(matchID int, ids []int) bool {
	negative := false
	for _, id := range ids {
		if id == matchID {
			return true
		}
		if id == 0 { // wl:0 sentinel — documented quirk, see spec.md §9.
			return true
		}
		if id < 0 && matchID >= 1000 {
			negative = true
			if matchID == -id {
				return false
			}
		}
	}
	return negative
}

// accepts is RuleParser::isWhitelistAdapted: given a candidate's
// (zone, targetName) and the kind of lookup that found entry, decide
// whether the whitelist actually applies to this (rule, zone, name).
func accepts(entry *WhitelistEntry, zone MatchZone, targetName bool, ruleID int, kind matchType) bool {
	zone = foldFileExt(zone)

	if entry.TargetName != targetName {
		return false
	}

	switch kind {
	case nameOnly:
		if zone != entry.Zone || entry.URIOnly {
			return false
		}
		return ruleIDMatches(ruleID, entry.IDs)
	case uriOnly, mixed:
		if entry.URIOnly && kind != uriOnly {
			return false
		}
		// ZoneUnknown marks a bare "$URL:x" whitelist with no coarse zone
		// flag (see indexWhitelists): it applies to its URI in any zone.
		if entry.Zone != ZoneUnknown && zone != entry.Zone {
			return false
		}
		return ruleIDMatches(ruleID, entry.IDs)
	default:
		return false
	}
}

// isRuleWhitelisted implements the five-step algorithm of spec.md §4.4:
// disabled-rule check, name-keyed hashtable lookup, URI-keyed hashtable
// lookup (including the mixed uri#name form), and finally the
// regex-match-zone whitelist list.
//
// Grounded on RuleParser::isRuleWhitelisted.
func isRuleWhitelisted(rs *RuleSet, uri string, rule *Rule, name string, zone MatchZone, targetName bool) bool {
	for _, disabled := range rs.DisabledRules {
		if !ruleIDMatches(rule.ID, disabled.WlIDs) {
			continue
		}
		if !disabled.HasZone {
			return true
		}
		if !disabled.Zone.TargetsAnyZone() {
			return true
		}
		if targetName != disabled.Zone.TargetName {
			continue
		}
		switch zone {
		case ZoneArgs:
			if disabled.Zone.Args {
				return true
			}
		case ZoneHeaders:
			if disabled.Zone.Headers {
				return true
			}
		case ZoneBody:
			if disabled.Zone.Body {
				return true
			}
		case ZoneFileExt:
			if disabled.Zone.FileExt {
				return true
			}
		case ZoneURL:
			if disabled.Zone.URL {
				return true
			}
		}
	}

	lowerName := strings.ToLower(name)

	if lowerName != "" {
		if entry, ok := rs.whitelistHash(zone)[lowerName]; ok {
			if accepts(entry, zone, targetName, rule.ID, nameOnly) {
				return true
			}
		}
		if entry, ok := rs.whitelistHash(zone)["#"+lowerName]; ok {
			if accepts(entry, zone, targetName, rule.ID, nameOnly) {
				return true
			}
		}
	}

	lowerURI := strings.ToLower(uri)

	if entry, ok := rs.WlURLHash[lowerURI]; ok {
		if accepts(entry, zone, targetName, rule.ID, uriOnly) {
			return true
		}
	}
	if entry, ok := rs.whitelistHash(zone)[lowerURI]; ok {
		if accepts(entry, zone, targetName, rule.ID, uriOnly) {
			return true
		}
	}
	if entry, ok := rs.whitelistHash(zone)["#"+lowerURI]; ok {
		if accepts(entry, zone, targetName, rule.ID, uriOnly) {
			return true
		}
	}

	mixedKey := lowerURI + "#" + lowerName
	if targetName {
		mixedKey = "#" + mixedKey
	}
	if entry, ok := rs.whitelistHash(zone)[mixedKey]; ok {
		if accepts(entry, zone, targetName, rule.ID, mixed) {
			return true
		}
	}

	return isRuleWhitelistedRx(rs, uri, rule, name, zone, targetName)
}

// isRuleWhitelistedRx evaluates the regex-match-zone whitelist list.
//
// The original C++ (RuleParser::isRuleWhitelistedRx) has an inverted
// early return, `if (rxmz_wlr.size() > 0) return false;`, that reads as a
// bug: it exits "if we have any" rather than "if empty." Per spec.md §9,
// this implementation uses the intended size()==0 guard instead of
// replicating the defect.
func isRuleWhitelistedRx(rs *RuleSet, uri string, rule *Rule, name string, zone MatchZone, targetName bool) bool {
	if len(rs.RxmzWhitelists) == 0 {
		return false
	}

	for _, rx := range rs.RxmzWhitelists {
		if !rx.Zone.HasCustomLocation() {
			continue
		}
		if rx.Zone.Zone != zone {
			continue
		}
		if targetName != rx.Zone.TargetName {
			continue
		}

		violation := false
		for _, loc := range rx.Zone.CustomLocations {
			var candidate string
			switch loc.Kind {
			case LocationBodyVar, LocationArgsVar, LocationHeadersVar:
				candidate = name
			case LocationURL:
				candidate = uri
			default:
				continue
			}
			if !loc.Matches(candidate) {
				violation = true
				break
			}
		}
		if !violation && ruleIDMatches(rule.ID, rx.WlIDs) {
			return true
		}
	}
	return false
}
