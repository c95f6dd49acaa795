package wafengine

import (
	"net"
	"os"
	"strconv"
	"strings"
)

// fileExists checks if path names an existing file that is not a directory.
//
// Adapted from the teacher's helpers.go.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// isIPv4 - checks if input IP is of type v4
//
// Adapted from the teacher's helpers.go.
func isIPv4(addr string) bool {
	return strings.Count(addr, ":") < 2
}

// appendCIDR - appends a host CIDR suffix for a single bare IP.
//
// Adapted from the teacher's helpers.go.
func appendCIDR(ip string) string {
	if isIPv4(ip) {
		return ip + "/32"
	}
	return ip + "/64"
}

// extractIP extracts the IP address from a remote address string.
//
// Adapted from the teacher's helpers.go.
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr // Assume the input is already an IP address
	}
	return host
}

func formatInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
