package wafengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPattern_CaseInsensitiveContainment(t *testing.T) {
	p := newLiteralPattern("UnIoN")
	assert.True(t, p.Test("1 union select"))
	assert.True(t, p.Test("UNION SELECT"))
	assert.False(t, p.Test("intersect"))
	assert.Equal(t, "UnIoN", p.String())
}

func TestRegexPattern_Match(t *testing.T) {
	cache := newRegexCache()
	re, err := cache.compile(`^\d+$`)
	require.NoError(t, err)
	p := &regexPattern{raw: `^\d+$`, re: re}

	assert.True(t, p.Test("12345"))
	assert.False(t, p.Test("12a45"))
	assert.Equal(t, `^\d+$`, p.String())
}

func TestRegexCache_DeduplicatesCompilation(t *testing.T) {
	cache := newRegexCache()
	re1, err := cache.compile(`abc+`)
	require.NoError(t, err)
	re2, err := cache.compile(`abc+`)
	require.NoError(t, err)
	assert.Same(t, re1, re2)
}

func TestRegexCache_CompileError(t *testing.T) {
	cache := newRegexCache()
	_, err := cache.compile(`(`)
	assert.Error(t, err)
}
