// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/goccy/go-json"
)

// Key builds a deterministic cache key from an operation name and its
// parameters.
//
// Parameters are canonicalized by marshaling to JSON, decoding into
// generic values, and re-marshaling: the second marshal sorts object keys,
// so logically equal parameter sets produce the same key regardless of
// struct field order or how the caller assembled a map. The canonical JSON
// is hashed and truncated for a compact key of the form "op:hex".
func Key(op string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to a simple string key
		return fmt.Sprintf("%s:%v", op, params)
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err == nil {
		if canonical, cerr := json.Marshal(generic); cerr == nil {
			data = canonical
		}
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", op, hash[:8])
}
