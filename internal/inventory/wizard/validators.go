package wizard

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// clusterNameRegex validates cluster name format: 1-32 lowercase alphanumeric with hyphens.
var clusterNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

var hostnameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

func validateClusterName(s string) error {
	if s == "" {
		return errClusterNameRequired
	}
	if !clusterNameRegex.MatchString(s) {
		return errClusterNameInvalid
	}
	return nil
}

func validateEndpoint(s string) error {
	if s == "" {
		return errEndpointRequired
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return errEndpointInvalid
	}
	return nil
}

func validateHostname(s string) error {
	if s == "" {
		return errHostnameRequired
	}
	if !hostnameRegex.MatchString(s) {
		return errHostnameInvalid
	}
	return nil
}

func validateIP(s string) error {
	if s == "" {
		return errIPRequired
	}
	if net.ParseIP(s) == nil {
		return errIPInvalid
	}
	return nil
}

func validateOptionalIP(s string) error {
	if s == "" {
		return nil
	}
	return validateIP(s)
}

// parseList splits comma-separated input into trimmed, non-empty values.
func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
