// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package config

import (
	"fmt"
	"net/url"
)

// validateHTTPURL checks that a value is a usable HTTP base URL for
// fieldName: http or https scheme, a host, and nothing after the host
// beyond a trailing slash. The directory client joins its own paths,
// so a configured path is almost always a copy-paste mistake.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("%s should be a base URL only, remove path: %s", fieldName, u.Path)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not carry query parameters, remove: ?%s", fieldName, u.RawQuery)
	}
	return nil
}

// validateNATSURL accepts the connection URL forms nats.go understands:
// nats, tls, ws, or wss schemes with a host and optional port.
func validateNATSURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
	default:
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (e.g. nats://localhost:4222)")
	}
	return nil
}
