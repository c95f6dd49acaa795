package wafengine

import (
	"fmt"
	"strconv"
	"strings"
)

// compileCheckRule parses one CheckRule directive's two-argument vector:
//
//	[ "<tag> <cmp> <limit>" , "<ACTION>;" ]
//
// Grounded on RuleParser::parseCheckRules.
func compileCheckRule(args []string) (CheckRule, error) {
	if len(args) != 2 {
		return CheckRule{}, fmt.Errorf("expected 2 fields, got %d", len(args))
	}

	fields := strings.Fields(args[0])
	if len(fields) != 3 {
		return CheckRule{}, fmt.Errorf("malformed equation %q", args[0])
	}

	tag := strings.TrimSpace(fields[0])
	var cmp Comparator
	switch fields[1] {
	case ">=":
		cmp = CmpGreaterOrEqual
	case ">":
		cmp = CmpGreater
	case "<=":
		cmp = CmpLessOrEqual
	case "<":
		cmp = CmpLess
	default:
		return CheckRule{}, fmt.Errorf("unknown comparator %q", fields[1])
	}

	limit, err := strconv.Atoi(fields[2])
	if err != nil {
		return CheckRule{}, fmt.Errorf("bad limit %q: %w", fields[2], err)
	}

	action := strings.TrimSuffix(strings.TrimSpace(args[1]), ";")
	var a Action
	switch action {
	case "BLOCK":
		a = ActionBlock
	case "DROP":
		a = ActionDrop
	case "ALLOW":
		a = ActionAllow
	case "LOG":
		a = ActionLog
	default:
		return CheckRule{}, fmt.Errorf("unknown action %q", action)
	}

	return CheckRule{Tag: tag, Comparator: cmp, Limit: limit, Action: a}, nil
}
