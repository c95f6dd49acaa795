package wafengine

import "github.com/corazawaf/libinjection-go"

// Oracle is consulted by the runtime scanner for the two reserved internal
// rules (SQL injection, rule 17; XSS, rule 18) instead of a Pattern, since
// neither heuristic reduces to a literal or regex match. Grounded on
// spec.md §3's description of rule IDs 17/18 as externally-supplied
// oracles.
type Oracle interface {
	IsSQLi(value string) bool
	IsXSS(value string) bool
}

// LibinjectionOracle wraps github.com/corazawaf/libinjection-go, the same
// SQLi/XSS heuristic library used by the ShieldCli example in the
// retrieval pack.
type LibinjectionOracle struct{}

func (LibinjectionOracle) IsSQLi(value string) bool {
	isSQLi, _ := libinjection.IsSQLi(value)
	return isSQLi
}

func (LibinjectionOracle) IsXSS(value string) bool {
	return libinjection.IsXSS(value)
}

// NoopOracle disables the SQL/XSS oracle rules entirely — useful for
// hosts that want literal/regex rule coverage without linking an
// injection-detection library.
type NoopOracle struct{}

func (NoopOracle) IsSQLi(string) bool { return false }
func (NoopOracle) IsXSS(string) bool  { return false }
