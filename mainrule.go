package wafengine

import (
	"fmt"
	"strconv"
	"strings"
)

// compileMainRule parses one MainRule directive's argument vector:
//
//	[ "negative"? , "rx:<re>"|"str:<lit>" , "msg:<m>" , "mz:<zones>" , "s:<tag:n,...>" , "id:<n>" , ";"? ]
//
// Grounded on RuleParser::parseMainRules in original_source/RuleParser.cpp.
func compileMainRule(args []string, cache *regexCache) (*Rule, error) {
	args = trimTrailingSemicolon(args)

	rule := &Rule{Kind: MainRuleKind}

	if len(args) > 0 && args[0] == "negative" {
		rule.Zone.Negative = true
		args = args[1:]
	}

	if len(args) < 5 {
		return nil, fmt.Errorf("expected 5 fields after optional negative, got %d", len(args))
	}

	patternField, msgField, mzField, scoreField, idField := args[0], args[1], args[2], args[3], args[4]

	kind, value, ok := splitField(patternField, ":")
	if !ok {
		return nil, fmt.Errorf("malformed pattern field %q", patternField)
	}
	switch kind {
	case "rx":
		re, err := cache.compile(value)
		if err != nil {
			return nil, fmt.Errorf("regex_error: %w", err)
		}
		rule.Pattern = &regexPattern{raw: value, re: re}
	case "str":
		rule.Pattern = newLiteralPattern(value)
	default:
		return nil, fmt.Errorf("unknown pattern kind %q", kind)
	}

	_, msg, ok := splitField(msgField, ":")
	if !ok {
		return nil, fmt.Errorf("malformed msg field %q", msgField)
	}
	rule.LogMsg = msg

	_, mzRaw, ok := splitField(mzField, ":")
	if !ok {
		return nil, fmt.Errorf("malformed mz field %q", mzField)
	}
	if err := parseMatchZone(&rule.Zone, mzRaw, cache); err != nil {
		return nil, err
	}

	_, scoreRaw, ok := splitField(scoreField, ":")
	if !ok {
		return nil, fmt.Errorf("malformed score field %q", scoreField)
	}
	scores, err := parseScores(scoreRaw)
	if err != nil {
		return nil, err
	}
	rule.Scores = scores

	_, idRaw, ok := splitField(idField, ":")
	if !ok {
		return nil, fmt.Errorf("malformed id field %q", idField)
	}
	id, err := strconv.Atoi(idRaw)
	if err != nil {
		return nil, fmt.Errorf("bad rule id %q: %w", idRaw, err)
	}
	rule.ID = id

	return rule, nil
}

// splitField splits a "key:value" directive field at the first colon.
func splitField(field, sep string) (key, value string, ok bool) {
	idx := strings.Index(field, sep)
	if idx < 0 {
		return "", "", false
	}
	return field[:idx], field[idx+len(sep):], true
}

func parseScores(raw string) ([]Score, error) {
	parts := strings.Split(raw, ",")
	scores := make([]Score, 0, len(parts))
	for _, p := range parts {
		tag, ptsRaw, ok := splitField(p, ":")
		if !ok {
			return nil, fmt.Errorf("malformed score pair %q", p)
		}
		pts, err := strconv.Atoi(ptsRaw)
		if err != nil {
			return nil, fmt.Errorf("bad score value %q: %w", ptsRaw, err)
		}
		scores = append(scores, Score{Tag: tag, Points: pts})
	}
	return scores, nil
}

// trimTrailingSemicolon drops a lone trailing ";" token, present in Nginx
// style configuration but not Apache, per RuleParser::parseMainRules.
func trimTrailingSemicolon(args []string) []string {
	if len(args) > 0 && args[len(args)-1] == ";" {
		return args[:len(args)-1]
	}
	return args
}

// parseMatchZone splits rawMatchZone on "|" and applies each token to spec,
// handling both coarse zone flags (ARGS, HEADERS, URL, BODY, FILE_EXT,
// NAME) and "$KIND:target" / "$KIND_X:target" custom locations.
//
// Grounded on RuleParser::parseMatchZone.
func parseMatchZone(spec *MatchZoneSpec, rawMatchZone string, cache *regexCache) error {
	for _, mz := range strings.Split(rawMatchZone, "|") {
		if mz == "" {
			continue
		}
		if mz[0] != '$' {
			switch mz {
			case "ARGS":
				spec.Args = true
			case "HEADERS":
				spec.Headers = true
			case "URL":
				spec.URL = true
			case "BODY":
				spec.Body = true
			case "FILE_EXT":
				spec.FileExt = true
				spec.Body = true
			case "NAME":
				spec.TargetName = true
			default:
				return fmt.Errorf("unknown match zone token %q", mz)
			}
			continue
		}

		kindRaw, target, ok := splitField(mz, ":")
		if !ok {
			return fmt.Errorf("malformed custom location %q", mz)
		}

		loc := CustomLocation{rawTarget: target}
		isRegex := strings.HasSuffix(kindRaw, "_X")
		baseKind := strings.TrimSuffix(kindRaw, "_X")

		var kind LocationKind
		switch baseKind {
		case "$ARGS_VAR":
			kind = LocationArgsVar
		case "$HEADERS_VAR":
			kind = LocationHeadersVar
		case "$URL":
			kind = LocationURL
		case "$BODY_VAR":
			kind = LocationBodyVar
		default:
			return fmt.Errorf("unknown custom location kind %q", kindRaw)
		}
		loc.Kind = kind

		if isRegex {
			loc.IsRegex = true
			re, err := cache.compile(target)
			if err != nil {
				// Regex compile failure in a custom location: skip that
				// location entirely — including the flag it would have
				// set — and keep the others. The failure is neither
				// logged nor reported in the CompileReport.
				continue
			}
			loc.TargetRx = re
			spec.HasRegexLocation = true
		} else {
			loc.Target = strings.ToLower(target)
		}
		spec.CustomLocations = append(spec.CustomLocations, loc)

		switch kind {
		case LocationArgsVar:
			spec.ArgsVar = true
		case LocationHeadersVar:
			spec.HeadersVar = true
		case LocationBodyVar:
			spec.BodyVar = true
		}
	}
	return nil
}

func tryParseIDArg(a string) (int, bool) {
	_, v, ok := splitField(a, ":")
	if !ok || !strings.HasPrefix(a, "id:") {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return id, true
}
