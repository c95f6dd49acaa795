package wafengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogger_EmptyDestinationOnlyLogsViaZap(t *testing.T) {
	al, err := NewAuditLogger("", nil)
	require.NoError(t, err)
	al.Write(AuditRecord{Action: ActionBlock.String()})
	assert.NoError(t, al.Close())
}

func TestAuditLogger_FileDestinationWritesOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	al, err := NewAuditLogger(path, nil)
	require.NoError(t, err)

	al.Write(AuditRecord{RequestID: "r1", Method: "GET", URI: "/a", Action: ActionBlock.String(), RulesMatched: 1})
	al.Write(AuditRecord{RequestID: "r2", Method: "GET", URI: "/b", Action: ActionLog.String(), RulesMatched: 0})
	require.NoError(t, al.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "id=r1")
	assert.Contains(t, content, "uri=\"/a\"")
	assert.Contains(t, content, "action=BLOCK")
	assert.Contains(t, content, "id=r2")
	assert.Contains(t, content, "action=LOG")
}

func TestAuditLogger_DisabledGeoAnnotatorLeavesCountryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	al, err := NewAuditLogger(path, nil)
	require.NoError(t, err)
	al.Geo, _ = NewGeoAnnotator(filepath.Join(t.TempDir(), "absent.mmdb")) // disabled annotator

	al.Write(AuditRecord{RequestID: "r1", Action: ActionLog.String()})
	require.NoError(t, al.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "country= action=LOG")
}

func TestAuditLogger_PreservesExplicitCountryOverGeo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	al, err := NewAuditLogger(path, nil)
	require.NoError(t, err)
	al.Geo, _ = NewGeoAnnotator(filepath.Join(t.TempDir(), "absent.mmdb"))

	al.Write(AuditRecord{RequestID: "r1", Action: ActionLog.String(), Country: "FR"})
	require.NoError(t, al.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "country=FR")
}
