package wafengine

import (
	"fmt"
	"strconv"
	"strings"
)

// compileBasicRule parses one BasicRule directive's argument vector,
// either:
//
//	[ "wl:<idlist>;" ]                     -- no match zone, global disable
//	[ "wl:<idlist>" , "mz:<zones>" , ";"? ] -- whitelist scoped to a match zone
//
// Grounded on RuleParser::parseBasicRules.
func compileBasicRule(args []string, cache *regexCache) (*Rule, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty BasicRule")
	}

	rule := &Rule{Kind: BasicRuleKind, Whitelist: true}

	wlField := args[0]
	_, rawList, ok := splitField(wlField, ":")
	if !ok || !strings.HasPrefix(wlField, "wl:") {
		return nil, fmt.Errorf("malformed whitelist field %q", wlField)
	}

	// "wl:<idlist>;" with the semicolon glued to the id list itself means
	// no match-zone block at all: the whitelist disables its IDs globally.
	noZone := strings.HasSuffix(rawList, ";")
	rawList = strings.TrimSuffix(rawList, ";")

	ids, err := parseIntList(rawList)
	if err != nil {
		return nil, err
	}
	rule.WlIDs = ids

	if noZone {
		rule.HasZone = false
		return rule, nil
	}

	rest := trimTrailingSemicolon(args[1:])
	if len(rest) < 1 {
		return nil, fmt.Errorf("missing mz field")
	}
	_, mzRaw, ok := splitField(rest[0], ":")
	if !ok {
		return nil, fmt.Errorf("malformed mz field %q", rest[0])
	}
	if err := parseMatchZone(&rule.Zone, mzRaw, cache); err != nil {
		return nil, err
	}
	rule.HasZone = true
	return rule, nil
}

func parseIntList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad whitelist id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
