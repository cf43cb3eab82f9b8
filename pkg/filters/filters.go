// Package filters provides the pure transformations between the raw client
// fetch and the migration CSV: wired filtering, MAC exclusion, deduplication,
// and VLAN set extraction.
package filters

import (
	"sort"

	"Migrate-Meraki-Clients-To-Segments/pkg/macaddr"
	"Migrate-Meraki-Clients-To-Segments/pkg/meraki"
)

// FilterWired returns only clients with a switchport, i.e. wired clients.
// Wireless clients have no switchport and are out of scope for the migration.
func FilterWired(clients []meraki.NetworkClient) []meraki.NetworkClient {
	var wired []meraki.NetworkClient
	for _, c := range clients {
		if c.Switchport != "" {
			wired = append(wired, c)
		}
	}
	return wired
}

// ExcludeMACs drops clients whose MAC matches any of the given patterns
// (exact, "*" wildcard, or "[..]" bracket patterns). Patterns that fail to
// compile are reported as an error rather than silently ignored.
func ExcludeMACs(clients []meraki.NetworkClient, patterns []string) ([]meraki.NetworkClient, error) {
	if len(patterns) == 0 {
		return clients, nil
	}
	matchers := make([]func(string) bool, 0, len(patterns))
	for _, p := range patterns {
		matcher, err := macaddr.BuildMacMatcher(p)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, matcher)
	}
	var kept []meraki.NetworkClient
	for _, c := range clients {
		excluded := false
		for _, match := range matchers {
			if match(c.MAC) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// DedupeClients removes duplicate (MAC, VLAN) pairs, keeping the first
// occurrence. The Dashboard can report the same client more than once within
// a timespan window.
func DedupeClients(clients []meraki.NetworkClient) []meraki.NetworkClient {
	type key struct {
		mac  string
		vlan int
		has  bool
	}
	seen := make(map[key]struct{}, len(clients))
	var unique []meraki.NetworkClient
	for _, c := range clients {
		k := key{mac: c.MAC}
		if c.HasVLAN() {
			k.vlan = *c.VLAN
			k.has = true
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// DistinctVLANs returns the set of distinct non-null VLAN identifiers across
// the given clients, sorted ascending. The sort makes prompt order
// deterministic regardless of fetch order.
func DistinctVLANs(clients []meraki.NetworkClient) []int {
	seen := make(map[int]struct{})
	for _, c := range clients {
		if c.HasVLAN() {
			seen[*c.VLAN] = struct{}{}
		}
	}
	vlans := make([]int, 0, len(seen))
	for v := range seen {
		vlans = append(vlans, v)
	}
	sort.Ints(vlans)
	return vlans
}
