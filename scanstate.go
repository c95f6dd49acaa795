package wafengine

import (
	"strings"

	"github.com/google/uuid"
)

// ScanState is the per-request, short-lived state accumulated across a
// single Scan call: per-tag score totals, the count of rules matched, the
// audit-log fragment buffer, and the four disposition flags.
//
// Grounded on spec.md §3 "Request scan state" / CApplication's
// matchScores, rulesMatchedCount, matchVars, block/drop/allow/log fields.
type ScanState struct {
	ID           string
	MatchScores  map[string]int
	RulesMatched int
	matchVars    strings.Builder

	Block bool
	Drop  bool
	Allow bool
	Log   bool
}

// newScanState allocates per-request scan state. An empty id is replaced
// with a freshly generated UUID, matching the teacher's direct
// google/uuid dependency: every scan — and every audit record derived
// from it — carries a stable correlation ID even when the host doesn't
// supply its own request ID.
func newScanState(id string) *ScanState {
	if id == "" {
		id = uuid.New().String()
	}
	return &ScanState{ID: id, MatchScores: make(map[string]int)}
}

func (s *ScanState) recordHit(rule *Rule, zone MatchZone, name string) {
	for _, sc := range rule.Scores {
		s.MatchScores[sc.Tag] += sc.Points
	}
	s.RulesMatched++
	if s.matchVars.Len() > 0 {
		s.matchVars.WriteByte('&')
	}
	s.matchVars.WriteString(zone.String())
	s.matchVars.WriteByte('|')
	s.matchVars.WriteString(formatInts([]int{rule.ID}))
	s.matchVars.WriteString("|var_name=")
	s.matchVars.WriteString(name)
}

// MatchVars returns the accumulated "zone|rule_id|var_name=..." audit log
// fragments, joined by "&", per spec.md §6's audit log record layout.
func (s *ScanState) MatchVars() string { return s.matchVars.String() }

// Verdict is the final per-request disposition produced by the
// check-rule evaluator, plus the scan state it was computed from.
type Verdict struct {
	Action      Action // zero value (ActionBlock) is meaningless unless one of the bools below is true
	Block       bool
	Drop        bool
	Allow       bool
	Log         bool
	Unavailable bool // set when Scan was called with a nil RuleSet
	State       *ScanState
}

// Blocked reports whether the request should be refused (BLOCK or DROP,
// after learning-mode downgrades have already been applied).
func (v *Verdict) Blocked() bool { return v.Block || v.Drop }
