package wafengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectiveFixture_DecodesAllThreeStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `
main_rules:
  - ["str:union", "msg:sql", "mz:ARGS", "s:$SQL:8", "id:1000"]
check_rules:
  - ["$SQL >= 8", "BLOCK;"]
basic_rules:
  - ["wl:1000", "mz:$ARGS_VAR:x"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	mainRules, checkRules, basicRules, err := LoadDirectiveFixture(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"str:union", "msg:sql", "mz:ARGS", "s:$SQL:8", "id:1000"}}, mainRules)
	assert.Equal(t, [][]string{{"$SQL >= 8", "BLOCK;"}}, checkRules)
	assert.Equal(t, [][]string{{"wl:1000", "mz:$ARGS_VAR:x"}}, basicRules)
}

func TestLoadDirectiveFixture_MissingFile(t *testing.T) {
	_, _, _, err := LoadDirectiveFixture(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadDirectiveFixture_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("main_rules: [\n  - not: [valid"), 0o644))

	_, _, _, err := LoadDirectiveFixture(path)
	assert.Error(t, err)
}

func TestLoadDirectiveFixture_EmptyFileYieldsNilStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	mainRules, checkRules, basicRules, err := LoadDirectiveFixture(path)
	require.NoError(t, err)
	assert.Nil(t, mainRules)
	assert.Nil(t, checkRules)
	assert.Nil(t, basicRules)
}
