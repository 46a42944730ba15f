// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Fingerprints are deterministic byte-stable hashes of canonicalized inputs.
// Canonicalization writes fields in a fixed order so JSON key order, map
// iteration order, and genre casing never change the digest.

// FingerprintAnswers hashes a (domain, answer map) pair. Equivalent answer
// sets produce identical fingerprints regardless of submission order.
func FingerprintAnswers(domain Domain, answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("domain=")
	b.WriteString(string(domain))
	for _, k := range keys {
		b.WriteByte('\n')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(answers[k])
	}
	return digest(b.String())
}

// Fingerprint hashes the predicate with a fixed field order. Genre sets are
// lowercased and sorted before hashing.
func (f FilterPredicate) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "minYear=%d\nmaxYear=%d\nminRating=%.4f\nmaxRuntime=%d\nminRuntime=%d\nminVotes=%d\nminPopularity=%.4f\nmaxPopularity=%.4f",
		f.MinYear, f.MaxYear, f.MinRating, f.MaxRuntime, f.MinRuntime,
		f.MinVotes, f.MinPopularity, f.MaxPopularity)
	b.WriteString("\ninclude=")
	b.WriteString(canonicalGenres(f.IncludeGenres))
	b.WriteString("\nexclude=")
	b.WriteString(canonicalGenres(f.ExcludeGenres))
	return digest(b.String())
}

// FingerprintQuery hashes retrieval query text.
func FingerprintQuery(text string) string {
	return digest("q=" + text)
}

// QueryKey is the composite cache key used by the result cache.
type QueryKey struct {
	Query  string
	Filter string
}

// String renders the key in a form usable as a KV key.
func (k QueryKey) String() string {
	return k.Query + ":" + k.Filter
}

func canonicalGenres(genres []string) string {
	if len(genres) == 0 {
		return ""
	}
	lowered := make([]string, len(genres))
	for i, g := range genres {
		lowered[i] = strings.ToLower(g)
	}
	sort.Strings(lowered)
	return strings.Join(lowered, ",")
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
