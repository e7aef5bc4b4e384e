package linksvc

import (
	"net"
	"net/url"
	"strings"
)

// isValidURL validates a candidate original_url: must parse, must use
// http/https, must carry a host, and must not be "localhost" or a literal
// private, link-local or loopback IP address (SSRF protection); hostnames
// are not resolved. Adapted directly from the teacher's
// internal/shortener/shorten.go isValidURL/isPrivateOrLocalhost, generalized
// only by file location (this package owns validation, not storage).
func isValidURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	if isPrivateOrLocalhost(u.Hostname()) {
		return false
	}
	return true
}

var privateRanges = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16", // link-local, includes cloud metadata endpoints
	"127.0.0.0/8",
	"::1/128",
	"fc00::/7",
	"fe80::/10",
}

func isPrivateOrLocalhost(host string) bool {
	if host == "localhost" || strings.HasPrefix(host, "127.") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		// Not a literal IP; this implementation does not resolve hostnames
		// before validating (would add DNS-rebinding exposure and a
		// blocking network call to every create request). Hostnames pass
		// through; only literal private/loopback IPs are rejected.
		return false
	}

	for _, cidr := range privateRanges {
		_, ipNet, _ := net.ParseCIDR(cidr)
		if ipNet.Contains(ip) {
			return true
		}
	}
	return false
}
