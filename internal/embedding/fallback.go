// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package embedding

import "math"

// Dimensions is the service-wide embedding width.
const Dimensions = 1536

// traitVocabulary is the fixed, alphabetical trait dimension assignment.
// Each trait owns a contiguous block of Dimensions/len(traitVocabulary)
// indices. The order is part of the fallback's determinism contract; never
// reorder or insert in the middle.
var traitVocabulary = []string{
	"calm",
	"cerebral",
	"complex",
	"dark",
	"emotional",
	"escapist",
	"familiar",
	"fast_paced",
	"grounded",
	"intense",
	"light",
	"melancholic",
	"novel",
	"simple",
	"slow_burn",
	"uplifting",
}

// blockWidth is the number of dimensions each trait owns.
const blockWidth = Dimensions / 16

// FallbackVector builds the deterministic weighted vector from option trait
// weights: each known trait fills its block with its weight, then the whole
// vector is L2-normalized. Unknown traits are ignored. A weightless input
// yields a uniform unit vector so downstream math never sees a zero vector.
func FallbackVector(traits map[string]float64) Vector {
	v := make(Vector, Dimensions)

	var norm float64
	for i, trait := range traitVocabulary {
		w := traits[trait]
		if w <= 0 {
			continue
		}
		start := i * blockWidth
		for j := start; j < start+blockWidth; j++ {
			v[j] = float32(w)
		}
		norm += w * w * float64(blockWidth)
	}

	if norm == 0 {
		uniform := float32(1 / math.Sqrt(Dimensions))
		for i := range v {
			v[i] = uniform
		}
		return v
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}
