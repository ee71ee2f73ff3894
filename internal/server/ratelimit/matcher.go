package ratelimit

import "strings"

var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when the default applies.
// Exact paths win over prefixes. Health checks and template listings are never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && (path == "/health" || path == "/templates" || strings.HasPrefix(path, "/templates/")) {
		return unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
