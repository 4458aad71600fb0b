package util

import "strings"

// parseNoProxy returns a matcher for a comma separated NO_PROXY list.
// Entries match the host itself and, with or without a leading dot, any
// subdomain. "*" matches everything.
func parseNoProxy(noProxy string) func(host string) bool {
	var entries []string
	for _, e := range strings.Split(noProxy, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			entries = append(entries, strings.TrimPrefix(e, "."))
		}
	}

	return func(host string) bool {
		host = strings.ToLower(host)
		for _, e := range entries {
			if e == "*" || host == e || strings.HasSuffix(host, "."+e) {
				return true
			}
		}
		return false
	}
}
