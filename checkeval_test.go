package wafengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newState(scores map[string]int) *ScanState {
	return &ScanState{ID: "t", MatchScores: scores}
}

func TestEvaluateCheckRules_AllowOverridesBlockAndDrop(t *testing.T) {
	rs := newRuleSet()
	rs.CheckRules["$SQL"] = CheckRule{Tag: "$SQL", Comparator: CmpGreaterOrEqual, Limit: 8, Action: ActionBlock}
	rs.CheckRules["$XSS"] = CheckRule{Tag: "$XSS", Comparator: CmpGreaterOrEqual, Limit: 1, Action: ActionAllow}

	v := EvaluateCheckRules(rs, newState(map[string]int{"$SQL": 8, "$XSS": 1}))
	assert.True(t, v.Allow)
	assert.False(t, v.Block)
	assert.Equal(t, ActionAllow, v.Action)
}

func TestEvaluateCheckRules_DropOutranksBlock(t *testing.T) {
	rs := newRuleSet()
	rs.CheckRules["$SQL"] = CheckRule{Tag: "$SQL", Comparator: CmpGreaterOrEqual, Limit: 8, Action: ActionBlock}
	rs.CheckRules["$ATT"] = CheckRule{Tag: "$ATT", Comparator: CmpGreaterOrEqual, Limit: 4, Action: ActionDrop}

	v := EvaluateCheckRules(rs, newState(map[string]int{"$SQL": 8, "$ATT": 4}))
	assert.True(t, v.Drop)
	assert.False(t, v.Block)
	assert.Equal(t, ActionDrop, v.Action)
}

func TestEvaluateCheckRules_LogIsAdditive(t *testing.T) {
	rs := newRuleSet()
	rs.CheckRules["$SQL"] = CheckRule{Tag: "$SQL", Comparator: CmpGreaterOrEqual, Limit: 8, Action: ActionBlock}
	rs.CheckRules["$ATT"] = CheckRule{Tag: "$ATT", Comparator: CmpGreaterOrEqual, Limit: 1, Action: ActionLog}

	v := EvaluateCheckRules(rs, newState(map[string]int{"$SQL": 8, "$ATT": 1}))
	assert.True(t, v.Block)
	assert.True(t, v.Log)
	assert.Equal(t, ActionBlock, v.Action)
}

func TestEvaluateCheckRules_NoneSatisfiedIsNoAction(t *testing.T) {
	rs := newRuleSet()
	rs.CheckRules["$SQL"] = CheckRule{Tag: "$SQL", Comparator: CmpGreaterOrEqual, Limit: 8, Action: ActionBlock}

	v := EvaluateCheckRules(rs, newState(map[string]int{"$SQL": 7}))
	assert.False(t, v.Block)
	assert.False(t, v.Drop)
	assert.False(t, v.Allow)
	assert.False(t, v.Log)
}

func TestEvaluateCheckRules_SyncsStateFlags(t *testing.T) {
	rs := newRuleSet()
	rs.CheckRules["$SQL"] = CheckRule{Tag: "$SQL", Comparator: CmpGreaterOrEqual, Limit: 8, Action: ActionBlock}
	state := newState(map[string]int{"$SQL": 8})

	EvaluateCheckRules(rs, state)
	assert.True(t, state.Block)
}

func TestApplyLearningMode_DowngradesBlock(t *testing.T) {
	v := &Verdict{Block: true, State: newState(map[string]int{"$SQL": 8})}
	ApplyLearningMode(v)
	assert.False(t, v.Block)
	assert.True(t, v.Log)
	assert.Equal(t, ActionLog, v.Action)
	assert.False(t, v.State.Block)
	assert.True(t, v.State.Log)
}

func TestApplyLearningMode_DowngradesDrop(t *testing.T) {
	v := &Verdict{Drop: true, State: newState(nil)}
	ApplyLearningMode(v)
	assert.False(t, v.Drop)
	assert.True(t, v.Log)
}

func TestApplyLearningMode_LeavesAllowUntouched(t *testing.T) {
	v := &Verdict{Allow: true, State: newState(nil)}
	ApplyLearningMode(v)
	assert.True(t, v.Allow)
	assert.False(t, v.Log)
}

func TestComparator_Satisfied(t *testing.T) {
	assert.True(t, CmpLess.satisfied(3, 4))
	assert.False(t, CmpLess.satisfied(4, 4))
	assert.True(t, CmpLessOrEqual.satisfied(4, 4))
	assert.True(t, CmpGreater.satisfied(5, 4))
	assert.True(t, CmpGreaterOrEqual.satisfied(4, 4))
}
