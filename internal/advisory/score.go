// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package advisory

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/tastegraph/internal/axis"
)

const (
	avoidIdentityBelow  = -0.2
	avoidCandidateAbove = 0.3
	avoidPenalty        = 8.0
	significantWeight   = 0.1
	ambiguousLow        = 40.0
	ambiguousHigh       = 70.0
	riskAmbiguous       = 0.30
	riskPerAvoidHit     = 0.20
	riskLowConfidence   = 0.25
	lowConfidenceBelow  = 0.35
)

// Assessment is the result of scoring a candidate tag vector.
type Assessment struct {
	// Alignment is in [0, 100].
	Alignment float64 `json:"alignment"`

	// Confidence is in [0, 1] and reflects how much signal both vectors carry.
	Confidence float64 `json:"confidence"`

	// Risk is the estimated risk of regret in [0, 1].
	Risk float64 `json:"risk"`

	// AvoidHits lists keys the identity avoids but the candidate leans on.
	AvoidHits []string `json:"avoid_hits,omitempty"`

	// Reasons are sorted, human-readable explanations.
	Reasons []string `json:"reasons"`
}

// Score compares a candidate tag vector with an identity tag vector.
// Both vectors are normalized first, so callers may pass raw weights.
func Score(candidate, identity axis.Vector) Assessment {
	c := candidate.Normalize()
	id := identity.Normalize()

	alignment := (axis.Cosine(c, id) + 1) / 2 * 100

	var hits []string
	for _, k := range axis.Keys(c, id) {
		if id[k] < avoidIdentityBelow && c[k] > avoidCandidateAbove {
			hits = append(hits, k)
		}
	}
	alignment = clamp(alignment-avoidPenalty*float64(len(hits)), 0, 100)

	confidence := 0.5*c.Significance(significantWeight) + 0.5*id.Significance(significantWeight)

	var risk float64
	if alignment >= ambiguousLow && alignment <= ambiguousHigh {
		risk += riskAmbiguous
	}
	risk += riskPerAvoidHit * float64(len(hits))
	if confidence < lowConfidenceBelow {
		risk += riskLowConfidence
	}

	return Assessment{
		Alignment:  alignment,
		Confidence: confidence,
		Risk:       clamp(risk, 0, 1),
		AvoidHits:  hits,
		Reasons:    reasons(alignment, confidence, hits),
	}
}

func reasons(alignment, confidence float64, hits []string) []string {
	var out []string
	switch {
	case alignment > ambiguousHigh:
		out = append(out, "strong alignment with your taste profile")
	case alignment >= ambiguousLow:
		out = append(out, "mixed alignment with your taste profile")
	default:
		out = append(out, "weak alignment with your taste profile")
	}
	for _, h := range hits {
		out = append(out, fmt.Sprintf("leans on %s, which you usually avoid", h))
	}
	if confidence < lowConfidenceBelow {
		out = append(out, "limited signal, treat this as a rough read")
	}
	sort.Strings(out)
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
