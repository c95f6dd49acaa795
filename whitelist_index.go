package wafengine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// indexWhitelists assigns each compiled BasicRule a single zone and
// hashtable key, merges entries that share a (key, zone) pair, and routes
// the result into RuleSet's four hashtables, the regex-match-zone list, or
// the globally-disabled list.
//
// Grounded on RuleParser::generateHashTables, RuleParser::wlrIdentify, and
// RuleParser::wlrFind in original_source/RuleParser.cpp.
func indexWhitelists(rs *RuleSet, rules []*Rule, logger *zap.Logger) error {
	type merged struct {
		entry *WhitelistEntry
	}
	var mergedList []*merged

	findExisting := func(name string, zone MatchZone) *merged {
		for _, m := range mergedList {
			if m.entry.Name == name && m.entry.Zone == zone {
				return m
			}
		}
		return nil
	}

	for _, rule := range rules {
		if !rule.HasZone || !rule.Zone.HasCustomLocation() {
			// No custom location at all: this whitelist disables its IDs
			// globally (RuleParser::generateHashTables's first branch).
			rs.DisabledRules = append(rs.DisabledRules, rule)
			continue
		}

		zone, uriLoc, nameLoc, err := classifyWhitelistZone(&rule.Zone)
		if err != nil {
			logger.Warn("whitelist targets multiple vars in the same zone, skipping", zap.Error(err))
			continue
		}
		rule.Zone.Zone = zone

		if rule.Zone.HasRegexLocation {
			rs.RxmzWhitelists = append(rs.RxmzWhitelists, rule)
			continue
		}

		name := composeWhitelistKey(&rule.Zone, uriLoc, nameLoc)
		if name == "" {
			continue
		}

		if m := findExisting(name, zone); m != nil {
			m.entry.IDs = append(m.entry.IDs, rule.WlIDs...)
			continue
		}

		entry := &WhitelistEntry{
			Name:       name,
			Zone:       zone,
			IDs:        append([]int(nil), rule.WlIDs...),
			TargetName: rule.Zone.TargetName,
			URIOnly:    uriLoc != nil && nameLoc == nil,
		}
		mergedList = append(mergedList, &merged{entry: entry})
	}

	for _, m := range mergedList {
		hash := rs.whitelistHash(m.entry.Zone)
		if hash == nil {
			// A bare "$URL:x" whitelist with no coarse zone flag (e.g.
			// `mz:$URL:/safe`) never picks up a zone in classifyWhitelistZone:
			// it describes a path, not a zone. Route it into the dedicated
			// URL hashtable instead of dropping it; accepts() treats a
			// ZoneUnknown entry there as matching any candidate zone, so the
			// whitelist suppresses a hit on that URI no matter which zone the
			// hit came from, per spec.md §8 scenario 3.
			if m.entry.URIOnly {
				rs.WlURLHash[m.entry.Name] = m.entry
				continue
			}
			logger.Warn("whitelist resolved to unknown zone, skipping", zap.String("name", m.entry.Name))
			continue
		}
		hash[m.entry.Name] = m.entry
	}
	return nil
}

// classifyWhitelistZone picks the single zone a whitelist applies to and
// returns its URI and variable-name custom locations (at most one of
// each), mirroring RuleParser::wlrIdentify.
func classifyWhitelistZone(spec *MatchZoneSpec) (zone MatchZone, uriLoc, nameLoc *CustomLocation, err error) {
	switch {
	case spec.Body || spec.BodyVar:
		zone = ZoneBody
	case spec.Headers || spec.HeadersVar:
		zone = ZoneHeaders
	case spec.Args || spec.ArgsVar:
		zone = ZoneArgs
	case spec.URL:
		zone = ZoneURL
	case spec.FileExt:
		zone = ZoneFileExt
	}

	for i := range spec.CustomLocations {
		loc := &spec.CustomLocations[i]
		switch loc.Kind {
		case LocationURL:
			uriLoc = loc
		case LocationBodyVar:
			if nameLoc != nil {
				return zone, uriLoc, nameLoc, fmt.Errorf("whitelist can't target more than one BODY item")
			}
			nameLoc = loc
			zone = ZoneBody
		case LocationHeadersVar:
			if nameLoc != nil {
				return zone, uriLoc, nameLoc, fmt.Errorf("whitelist can't target more than one HEADERS item")
			}
			nameLoc = loc
			zone = ZoneHeaders
		case LocationArgsVar:
			if nameLoc != nil {
				return zone, uriLoc, nameLoc, fmt.Errorf("whitelist can't target more than one ARGS item")
			}
			nameLoc = loc
			zone = ZoneArgs
		}
	}
	return zone, uriLoc, nameLoc, nil
}

// composeWhitelistKey builds the hashtable key described in spec.md §4.2:
// an optional "#" prefix when the whitelist targets variable names, then
// either "uri#name", "uri", or "name".
func composeWhitelistKey(spec *MatchZoneSpec, uriLoc, nameLoc *CustomLocation) string {
	var b strings.Builder
	if spec.TargetName {
		b.WriteByte('#')
	}
	switch {
	case uriLoc != nil && nameLoc != nil:
		b.WriteString(uriLoc.Target)
		b.WriteByte('#')
		b.WriteString(nameLoc.Target)
	case uriLoc != nil:
		b.WriteString(uriLoc.Target)
	case nameLoc != nil:
		b.WriteString(nameLoc.Target)
	default:
		return ""
	}
	return b.String()
}
