// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reinforcement

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/tastegraph/internal/embedding"
)

const (
	stabilityMemory      = 0.9
	stabilityFresh       = 0.1
	stabilityPerturbGain = 10.0
)

// Path describes how a vote affected the identity.
type Path string

const (
	PathImmediate Path = "immediate"
	PathDeferred  Path = "deferred"
	PathCounted   Path = "counted"
)

// Policy applies votes to identities. It is immutable and safe for concurrent use.
type Policy struct {
	cfg     Config
	anchors map[string]struct{}
}

// NewPolicy builds a policy from cfg. Anchor categories are matched
// case-insensitively.
func NewPolicy(cfg Config) *Policy {
	anchors := make(map[string]struct{}, len(cfg.AnchorCategories))
	for _, c := range cfg.AnchorCategories {
		anchors[normalizeCategory(c)] = struct{}{}
	}
	return &Policy{cfg: cfg, anchors: anchors}
}

var defaultPolicy = NewPolicy(DefaultConfig())

// DefaultPolicy returns the policy built from DefaultConfig.
func DefaultPolicy() *Policy {
	return defaultPolicy
}

// Config returns the policy parameters.
func (p *Policy) Config() Config {
	cfg := p.cfg
	cfg.AnchorCategories = append([]string(nil), p.cfg.AnchorCategories...)
	return cfg
}

// IsAnchor reports whether category is high commitment.
func (p *Policy) IsAnchor(category string) bool {
	_, ok := p.anchors[normalizeCategory(category)]
	return ok
}

// Defers reports whether fb produces a pending record instead of an
// immediate embedding update.
//
//nolint:gocritic // hugeParam: feedback passed by value for immutability
func (p *Policy) Defers(fb Feedback) bool {
	return (fb.Vote == VoteConfirm || fb.Vote == VoteReject) && p.IsAnchor(fb.Category)
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// Apply is Policy.Apply using DefaultPolicy.
//
//nolint:gocritic // hugeParam: identity and feedback passed by value for immutability
func Apply(id Identity, fb Feedback, now time.Time) (Identity, *Pending) {
	next, pending, _ := defaultPolicy.Apply(id, fb, now)
	return next, pending
}

// Finalize is Policy.Finalize using DefaultPolicy.
//
//nolint:gocritic // hugeParam: identity and pending passed by value for immutability
func Finalize(id Identity, p Pending, now time.Time) Identity {
	return defaultPolicy.Finalize(id, p, now)
}

// Apply returns the identity after fb and, for anchor confirms and rejects, the
// deferred record the caller must queue. The version always advances by one.
//
//nolint:gocritic // hugeParam: identity and feedback passed by value for immutability
func (p *Policy) Apply(id Identity, fb Feedback, now time.Time) (Identity, *Pending, Path) {
	next := id
	next.Version++
	next.UpdatedAt = now

	anchor := p.IsAnchor(fb.Category)

	switch fb.Vote {
	case VoteConfirm:
		next.Confirms++
		if anchor {
			return next, p.deferVote(fb, now), PathDeferred
		}
		next = blendPositive(next, fb.Embedding, p.cfg.Alpha)
		return next, nil, PathImmediate

	case VoteReject:
		next.Rejects++
		if anchor {
			return next, p.deferVote(fb, now), PathDeferred
		}
		next = blendAnti(next, fb.Embedding, p.cfg.Gamma)
		return next, nil, PathImmediate

	case VoteWeakConfirm:
		next.Undecided++
		next = blendPositive(next, fb.Embedding, p.cfg.AlphaMaybe)
		return next, nil, PathImmediate

	case VoteReturned:
		next.Rejects++
		if fb.Reason.StyleRelated() {
			next = blendAnti(next, fb.Embedding, p.cfg.Gamma)
			return next, nil, PathImmediate
		}
		return next, nil, PathCounted

	default:
		// Unknown votes still count as a mutation so the version stays monotonic.
		return next, nil, PathCounted
	}
}

// Finalize applies a pending record at the amplified rate of its original
// vote using the embedding captured at vote time. It does not check the
// unlock time; callers that want the dwell enforced should check Pending.Due.
//
//nolint:gocritic // hugeParam: identity and pending passed by value for immutability
func (p *Policy) Finalize(id Identity, pending Pending, now time.Time) Identity {
	next := id
	next.Version++
	next.UpdatedAt = now

	switch pending.Vote {
	case VoteConfirm:
		next = blendPositive(next, pending.Embedding, p.cfg.Alpha*p.cfg.FinalizeMultiplier)
	case VoteReject:
		next = blendAnti(next, pending.Embedding, p.cfg.Gamma*p.cfg.FinalizeMultiplier)
	}
	return next
}

//nolint:gocritic // hugeParam: feedback passed by value for immutability
func (p *Policy) deferVote(fb Feedback, now time.Time) *Pending {
	return &Pending{
		ID:           uuid.NewString(),
		EvaluationID: fb.EvaluationID,
		Vote:         fb.Vote,
		Embedding:    fb.Embedding,
		Category:     fb.Category,
		CreatedAt:    now,
		UnlockAt:     now.Add(p.cfg.Dwell),
	}
}

//nolint:gocritic // hugeParam: identity passed by value for immutability
func blendPositive(id Identity, target embedding.Embedding, rate float64) Identity {
	before := id.Positive
	id.Positive = before.BlendToward(target, rate)
	id.Stability = nextStability(id.Stability, before, id.Positive)
	return id
}

//nolint:gocritic // hugeParam: identity passed by value for immutability
func blendAnti(id Identity, target embedding.Embedding, rate float64) Identity {
	before := id.Anti
	id.Anti = before.BlendToward(target, rate)
	id.Stability = nextStability(id.Stability, before, id.Anti)
	return id
}

// nextStability smooths the previous stability against how far the blend moved
// the embedding.
func nextStability(prev float64, before, after embedding.Embedding) float64 {
	calm := 1 - stabilityPerturbGain*before.MeanAbsDelta(after)
	calm = math.Max(0, math.Min(1, calm))
	return stabilityMemory*prev + stabilityFresh*calm
}
