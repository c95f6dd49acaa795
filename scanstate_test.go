package wafengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScanState_GeneratesUUIDWhenIDEmpty(t *testing.T) {
	s1 := newScanState("")
	s2 := newScanState("")
	assert.NotEmpty(t, s1.ID)
	assert.NotEqual(t, s1.ID, s2.ID)
}

func TestNewScanState_PreservesSuppliedID(t *testing.T) {
	s := newScanState("req-42")
	assert.Equal(t, "req-42", s.ID)
}

func TestScanState_RecordHitAccumulatesScoresAndMatchVars(t *testing.T) {
	s := newScanState("req-1")
	rule := &Rule{ID: 1000, Scores: []Score{{Tag: "$SQL", Points: 8}}}

	s.recordHit(rule, ZoneArgs, "x")
	assert.Equal(t, 8, s.MatchScores["$SQL"])
	assert.Equal(t, 1, s.RulesMatched)
	assert.Equal(t, "ARGS|1000|var_name=x", s.MatchVars())

	rule2 := &Rule{ID: 2000, Scores: []Score{{Tag: "$SQL", Points: 4}}}
	s.recordHit(rule2, ZoneHeaders, "y")
	assert.Equal(t, 12, s.MatchScores["$SQL"])
	assert.Equal(t, 2, s.RulesMatched)
	assert.Equal(t, "ARGS|1000|var_name=x&HEADERS|2000|var_name=y", s.MatchVars())
}

func TestVerdict_Blocked(t *testing.T) {
	assert.True(t, (&Verdict{Block: true}).Blocked())
	assert.True(t, (&Verdict{Drop: true}).Blocked())
	assert.False(t, (&Verdict{Allow: true}).Blocked())
	assert.False(t, (&Verdict{}).Blocked())
}
