package wafengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, fileExists(path))
	assert.False(t, fileExists(filepath.Join(dir, "absent")))
	assert.False(t, fileExists(""))
	assert.False(t, fileExists(dir)) // a directory is not a file
}

func TestIsIPv4(t *testing.T) {
	assert.True(t, isIPv4("192.168.1.1"))
	assert.False(t, isIPv4("2001:db8::1"))
}

func TestAppendCIDR(t *testing.T) {
	assert.Equal(t, "192.168.1.1/32", appendCIDR("192.168.1.1"))
	assert.Equal(t, "2001:db8::1/64", appendCIDR("2001:db8::1"))
}

func TestExtractIP(t *testing.T) {
	assert.Equal(t, "192.168.1.1", extractIP("192.168.1.1:8080"))
	assert.Equal(t, "2001:db8::1", extractIP("[2001:db8::1]:443"))
	assert.Equal(t, "192.168.1.1", extractIP("192.168.1.1")) // no port, passed through
}

func TestFormatInts(t *testing.T) {
	assert.Equal(t, "1,2,3", formatInts([]int{1, 2, 3}))
	assert.Equal(t, "", formatInts(nil))
}
