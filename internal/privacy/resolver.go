package privacy

import (
	"net"
	"strings"
)

// Unknown is the placeholder address used when no client address can be
// determined. Downstream stages (masking, geo lookup) treat it specially.
const Unknown = "unknown"

// ResolveAddress normalizes a client address from request metadata. When a
// forwarding header is present its first hop wins; otherwise the socket peer
// address is used, with any port stripped. IPv4-mapped IPv6 prefixes are
// removed so "::ffff:1.2.3.4" masks like plain IPv4.
//
// Pure and total: any input yields a usable string, worst case Unknown.
func ResolveAddress(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if i := strings.Index(first, ","); i >= 0 {
			first = first[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return stripMapped(first)
		}
	}

	if remoteAddr != "" {
		host, _, err := net.SplitHostPort(remoteAddr)
		if err != nil {
			host = remoteAddr
		}
		return stripMapped(host)
	}

	return Unknown
}

func stripMapped(addr string) string {
	return strings.TrimPrefix(addr, "::ffff:")
}
