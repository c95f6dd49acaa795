package wafengine

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"github.com/phemmer/go-iptrie"
)

// NetworkGate is a deliberately separate admission check: a remote
// address either passes or it doesn't, with no scoring, no whitelist
// interaction, and no effect on a Verdict's MatchScores. Hosts that want
// IP-based denylisting wire this in front of Scan rather than inside it,
// keeping the scoring engine's decision surface exactly the one spec.md
// §4 describes.
//
// Adapted from the teacher's ipBlacklist field and loadIPBlacklist
// (caddywaf.go), trimmed to a standalone component.
type NetworkGate struct {
	trie *iptrie.Trie
}

// NewNetworkGate returns an empty gate that admits every address until
// entries are loaded into it.
func NewNetworkGate() *NetworkGate {
	return &NetworkGate{trie: iptrie.NewTrie()}
}

// LoadFile reads one CIDR or bare IP per line (bare IPs are widened to a
// /32 or /64 host route via appendCIDR) and inserts each as a blocked
// prefix. Blank lines and "#"-prefixed comments are skipped.
//
// Adapted from the teacher's loadIPBlacklist.
func (g *NetworkGate) LoadFile(path string) error {
	if !fileExists(path) {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("network gate: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := g.Block(line); err != nil {
			continue
		}
	}
	return scanner.Err()
}

// Block adds a single IP or CIDR to the denylist.
func (g *NetworkGate) Block(ipOrCIDR string) error {
	candidate := ipOrCIDR
	if !strings.Contains(candidate, "/") {
		candidate = appendCIDR(candidate)
	}
	prefix, err := netip.ParsePrefix(candidate)
	if err != nil {
		return fmt.Errorf("network gate: invalid entry %q: %w", ipOrCIDR, err)
	}
	g.trie.Insert(prefix, nil)
	return nil
}

// Admit reports whether remoteAddr (a "host:port" or bare host string) is
// NOT present in the denylist.
func (g *NetworkGate) Admit(remoteAddr string) bool {
	host := extractIP(remoteAddr)
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return true
	}
	_, ok := g.trie.Get(addr)
	return !ok
}
