package privacy

import (
	"fmt"
	"regexp"
	"strings"
)

var ipv4Pattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.\d{1,3}\.\d{1,3}$`)

// MaskAddress redacts an address for display. IPv4 keeps the first two octets
// ("203.0.x.x"); IPv6 keeps the first three groups and appends a fixed
// ":xxxx:xxxx" suffix. Strings that look like neither come back as "masked",
// empty input as "unknown". Total for any string input.
func MaskAddress(addr string) string {
	if addr == "" || addr == Unknown {
		return Unknown
	}

	if m := ipv4Pattern.FindStringSubmatch(addr); m != nil {
		return fmt.Sprintf("%s.%s.x.x", m[1], m[2])
	}

	if strings.Contains(addr, ":") {
		var groups []string
		for _, g := range strings.Split(addr, ":") {
			if g != "" {
				groups = append(groups, g)
			}
		}
		if len(groups) >= 3 {
			return strings.Join(groups[:3], ":") + ":xxxx:xxxx"
		}
		return "masked"
	}

	return "masked"
}
