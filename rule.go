package wafengine

// RuleKind distinguishes a pattern-carrying MainRule from a pattern-less
// BasicRule (whitelist). Grounded on http_rule_t::type (MAIN_RULE/BASIC_RULE).
type RuleKind int

const (
	MainRuleKind RuleKind = iota
	BasicRuleKind
)

// Score is one (tag, points) contribution a Rule adds to the running
// per-request score map when it fires.
type Score struct {
	Tag    string
	Points int
}

// MatchZoneSpec is the br block on a Rule: coarse zone flags, the
// variable-name-vs-content flag, the custom-location list, and — once a
// BasicRule has been through whitelist indexing — the single resolved
// Zone.
//
// Grounded on http_rule_t::br in original_source/RuleParser.cpp.
type MatchZoneSpec struct {
	Args     bool
	Headers  bool
	Body     bool
	URL      bool
	FileExt  bool
	Negative bool

	TargetName bool // "NAME" token: test the rule against the variable name

	ArgsVar    bool // set when a custom location targets an ARGS_VAR
	HeadersVar bool
	BodyVar    bool

	HasRegexLocation bool // any "_X" suffixed custom location (rxMz)
	CustomLocations  []CustomLocation

	// Zone is populated by the whitelist indexer for BasicRules; MainRules
	// never need a single resolved zone since they may live in several
	// zone vectors at once.
	Zone MatchZone
}

// HasCustomLocation reports whether the spec carries at least one
// CustomLocation of any kind.
func (mz *MatchZoneSpec) HasCustomLocation() bool {
	return len(mz.CustomLocations) > 0
}

// TargetsAnyZone reports whether any coarse zone flag is set, used by the
// whitelist resolver to distinguish "disabled everywhere" from
// "disabled in a specific zone."
func (mz *MatchZoneSpec) TargetsAnyZone() bool {
	return mz.Args || mz.Headers || mz.Body || mz.URL
}

// Rule is a compiled MainRule (pattern-carrying, attack detection) or
// BasicRule (pattern-less, whitelist). Grounded on http_rule_t.
type Rule struct {
	ID      int
	Kind    RuleKind
	LogMsg  string
	Pattern Pattern // nil for BasicRules
	Zone    MatchZoneSpec
	Scores  []Score

	// Whitelist-only fields.
	Whitelist bool
	WlIDs     []int
	HasZone   bool // false means "wl:<ids>;" with no mz: block at all
}

// Comparator is a CheckRule's threshold operator.
type Comparator int

const (
	CmpLess Comparator = iota
	CmpLessOrEqual
	CmpGreater
	CmpGreaterOrEqual
)

func (c Comparator) satisfied(score, limit int) bool {
	switch c {
	case CmpLess:
		return score < limit
	case CmpLessOrEqual:
		return score <= limit
	case CmpGreater:
		return score > limit
	case CmpGreaterOrEqual:
		return score >= limit
	default:
		return false
	}
}

// Action is the disposition a satisfied CheckRule applies.
type Action int

const (
	ActionBlock Action = iota
	ActionDrop
	ActionAllow
	ActionLog
)

func (a Action) String() string {
	switch a {
	case ActionBlock:
		return "BLOCK"
	case ActionDrop:
		return "DROP"
	case ActionAllow:
		return "ALLOW"
	case ActionLog:
		return "LOG"
	default:
		return "UNKNOWN"
	}
}

// CheckRule maps a tag's accumulated score to an action. Grounded on
// check_rule_t in original_source/RuleParser.cpp.
type CheckRule struct {
	Tag        string
	Comparator Comparator
	Limit      int
	Action     Action
}
