package wafengine

import (
	"fmt"

	"go.uber.org/zap"
)

// CompileError records one skipped directive and why, following spec.md
// §7's "log with offending rule ID, skip, continue" policy.
type CompileError struct {
	Directive string // "MainRule", "CheckRule", or "BasicRule"
	RuleID    int    // 0 when the ID itself could not be parsed
	Reason    string
}

func (e CompileError) Error() string {
	if e.RuleID != 0 {
		return fmt.Sprintf("%s #%d: %s", e.Directive, e.RuleID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Directive, e.Reason)
}

// CompileReport summarizes a Compile call: how many of each directive kind
// were accepted, and every directive that was skipped along the way.
// Mirrors spec.md §6's "rule counts logged at NOTICE level; per-rule
// compile errors logged and skipped."
type CompileReport struct {
	MainRules  int
	CheckRules int
	BasicRules int
	Errors     []CompileError
}

func (r *CompileReport) fail(e CompileError, logger *zap.Logger) {
	r.Errors = append(r.Errors, e)
	logger.Warn("directive compile error",
		zap.String("directive", e.Directive),
		zap.Int("rule_id", e.RuleID),
		zap.String("reason", e.Reason),
	)
}

// RuleCompiler turns already-tokenized directive argument vectors into an
// immutable *RuleSet. It is the Go analogue of RuleParser, minus the
// Apache-pool plumbing: it takes its three directive streams as arguments
// and returns a RuleSet rather than mutating process-global arrays, per
// spec.md §9's "Global mutable state ... is a host-embedding artifact."
type RuleCompiler struct {
	logger *zap.Logger
}

// NewRuleCompiler returns a RuleCompiler. A nil logger is replaced with a
// no-op logger.
func NewRuleCompiler(logger *zap.Logger) *RuleCompiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleCompiler{logger: logger}
}

// Compile consumes the three flat directive-argument streams described in
// spec.md §4.1 and §6 — each inner slice is one directive's already-split
// arguments — and produces a sealed RuleSet plus a report of what was
// skipped. Compile never retains its input slices on the returned RuleSet.
func (c *RuleCompiler) Compile(mainRules, checkRules, basicRules [][]string) (*RuleSet, *CompileReport) {
	rs := newRuleSet()
	registerInternalRules(rs)
	report := &CompileReport{}
	cache := newRegexCache()

	var compiledMain []*Rule
	for _, args := range mainRules {
		rule, err := compileMainRule(args, cache)
		if err != nil {
			report.fail(CompileError{Directive: "MainRule", RuleID: ruleIDOf(args), Reason: err.Error()}, c.logger)
			continue
		}
		rs.insertMainRule(rule)
		compiledMain = append(compiledMain, rule)
		report.MainRules++
	}

	for _, args := range checkRules {
		cr, err := compileCheckRule(args)
		if err != nil {
			report.fail(CompileError{Directive: "CheckRule", Reason: err.Error()}, c.logger)
			continue
		}
		rs.CheckRules[cr.Tag] = cr
		report.CheckRules++
	}

	var whitelistRules []*Rule
	for _, args := range basicRules {
		rule, err := compileBasicRule(args, cache)
		if err != nil {
			report.fail(CompileError{Directive: "BasicRule", Reason: err.Error()}, c.logger)
			continue
		}
		whitelistRules = append(whitelistRules, rule)
		report.BasicRules++
	}

	if err := indexWhitelists(rs, whitelistRules, c.logger); err != nil {
		report.fail(CompileError{Directive: "BasicRule", Reason: err.Error()}, c.logger)
	}

	c.logger.Info("compiled rule set",
		zap.Int("main_rules", report.MainRules),
		zap.Int("check_rules", report.CheckRules),
		zap.Int("basic_rules", report.BasicRules),
		zap.Int("errors", len(report.Errors)),
	)
	return rs, report
}

func ruleIDOf(args []string) int {
	for _, a := range args {
		if id, ok := tryParseIDArg(a); ok {
			return id
		}
	}
	return 0
}
