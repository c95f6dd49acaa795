package wafengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopOracle_NeverFires(t *testing.T) {
	o := NoopOracle{}
	assert.False(t, o.IsSQLi("1' OR '1'='1"))
	assert.False(t, o.IsXSS("<script>alert(1)</script>"))
}

func TestLibinjectionOracle_SatisfiesOracleInterface(t *testing.T) {
	var o Oracle = LibinjectionOracle{}
	assert.NotNil(t, o)
}
