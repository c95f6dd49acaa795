package wafengine

// EvaluateCheckRules maps a completed ScanState's per-tag score totals
// onto the compiled CheckRules, producing a Verdict. Grounded on
// spec.md §4.5 / CApplication's check-rule pass in mod_defender.cpp.
//
// Every check rule whose tag's accumulated score satisfies its comparator
// is applied; ALLOW always wins regardless of evaluation order, DROP
// outranks BLOCK when both trigger, and LOG is additive. This mirrors
// the original's "whitelisted score beats block score" precedence without
// depending on CheckRules' map iteration order.
func EvaluateCheckRules(rs *RuleSet, state *ScanState) *Verdict {
	v := &Verdict{State: state}

	for tag, cr := range rs.CheckRules {
		score := state.MatchScores[tag]
		if !cr.Comparator.satisfied(score, cr.Limit) {
			continue
		}
		switch cr.Action {
		case ActionAllow:
			v.Allow = true
		case ActionDrop:
			v.Drop = true
		case ActionBlock:
			v.Block = true
		case ActionLog:
			v.Log = true
		}
	}

	if v.Allow {
		v.Block = false
		v.Drop = false
		v.Action = ActionAllow
	} else if v.Drop {
		v.Block = false
		v.Action = ActionDrop
	} else if v.Block {
		v.Action = ActionBlock
	} else if v.Log {
		v.Action = ActionLog
	}

	state.Allow, state.Block, state.Drop, state.Log = v.Allow, v.Block, v.Drop, v.Log
	return v
}

// ApplyLearningMode downgrades a blocking verdict to log-only, leaving
// the underlying ScanState (scores, matched rules) untouched. Grounded on
// spec.md §4.6's learning-mode requirement: rules still fire and score,
// but no request is ever refused.
func ApplyLearningMode(v *Verdict) *Verdict {
	if v.Block || v.Drop {
		v.Log = true
		v.Block = false
		v.Drop = false
		v.Action = ActionLog
		v.State.Block, v.State.Drop = false, false
		v.State.Log = true
	}
	return v
}
