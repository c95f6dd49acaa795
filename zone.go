package wafengine

// MatchZone is the region of an HTTP request a rule or whitelist targets.
//
// Grounded on the original http_rule_t::br zone flags and the MATCH_ZONE
// enum in original_source/RuleParser.cpp; FileExt is a marker folded to
// Body wherever it is used as a lookup key (RuleParser::generateHashTables,
// RuleParser::isWhitelistAdapted).
type MatchZone int

const (
	ZoneUnknown MatchZone = iota
	ZoneURL
	ZoneArgs
	ZoneBody
	ZoneHeaders
	ZoneFileExt
)

func (z MatchZone) String() string {
	switch z {
	case ZoneURL:
		return "URL"
	case ZoneArgs:
		return "ARGS"
	case ZoneBody:
		return "BODY"
	case ZoneHeaders:
		return "HEADERS"
	case ZoneFileExt:
		return "FILE_EXT"
	default:
		return "UNKNOWN"
	}
}

// foldFileExt maps FILE_EXT to BODY wherever a single canonical zone is
// needed for a hashtable key or a zone comparison.
func foldFileExt(z MatchZone) MatchZone {
	if z == ZoneFileExt {
		return ZoneBody
	}
	return z
}

// LocationKind identifies the target of a CustomLocation.
type LocationKind int

const (
	LocationUnknown LocationKind = iota
	LocationArgsVar
	LocationHeadersVar
	LocationBodyVar
	LocationURL
)

func (k LocationKind) String() string {
	switch k {
	case LocationArgsVar:
		return "ARGS_VAR"
	case LocationHeadersVar:
		return "HEADERS_VAR"
	case LocationBodyVar:
		return "BODY_VAR"
	case LocationURL:
		return "URL"
	default:
		return "UNKNOWN"
	}
}
