// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reinforcement

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/tastegraph/internal/embedding"
)

var (
	// ErrUnknownVote is returned when a vote name is not recognized.
	ErrUnknownVote = errors.New("reinforcement: unknown vote")

	// ErrPendingNotFound is returned when no pending record exists for an evaluation.
	ErrPendingNotFound = errors.New("reinforcement: pending record not found")

	// ErrPendingExists is returned when an anchor vote reuses the evaluation id
	// of a record that is still pending.
	ErrPendingExists = errors.New("reinforcement: pending record already exists")

	// ErrUnknownReason is returned when a return reason is not recognized.
	ErrUnknownReason = errors.New("reinforcement: unknown return reason")
)

// Vote is a discrete feedback outcome.
type Vote string

const (
	VoteConfirm     Vote = "confirm"
	VoteReject      Vote = "reject"
	VoteWeakConfirm Vote = "weak_confirm"
	VoteReturned    Vote = "returned"
)

// ParseVote parses a vote name.
func ParseVote(s string) (Vote, error) {
	v := Vote(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VoteConfirm, VoteReject, VoteWeakConfirm, VoteReturned:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVote, s)
	}
}

// ReturnReason explains why a purchased item was returned.
type ReturnReason string

const (
	ReasonStyle      ReturnReason = "style"
	ReasonColor      ReturnReason = "color"
	ReasonPattern    ReturnReason = "pattern"
	ReasonSilhouette ReturnReason = "silhouette"
	ReasonMaterial   ReturnReason = "material"
	ReasonSize       ReturnReason = "size"
	ReasonFit        ReturnReason = "fit"
	ReasonDefect     ReturnReason = "defect"
	ReasonDamaged    ReturnReason = "damaged"
	ReasonLate       ReturnReason = "late"
	ReasonPrice      ReturnReason = "price"
	ReasonOther      ReturnReason = "other"
)

// ParseReturnReason parses a return reason name. The empty string is
// accepted and means no reason was given.
func ParseReturnReason(s string) (ReturnReason, error) {
	r := ReturnReason(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case "", ReasonStyle, ReasonColor, ReasonPattern, ReasonSilhouette, ReasonMaterial,
		ReasonSize, ReasonFit, ReasonDefect, ReasonDamaged, ReasonLate, ReasonPrice, ReasonOther:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReason, s)
	}
}

// StyleRelated reports whether the return says something about taste.
// Unknown and empty reasons are not style related.
func (r ReturnReason) StyleRelated() bool {
	switch ReturnReason(strings.ToLower(string(r))) {
	case ReasonStyle, ReasonColor, ReasonPattern, ReasonSilhouette, ReasonMaterial:
		return true
	default:
		return false
	}
}

// Identity is the evolving taste state of one profile.
type Identity struct {
	Positive  embedding.Embedding `json:"positive"`
	Anti      embedding.Embedding `json:"anti"`
	Stability float64             `json:"stability"`
	Confirms  uint64              `json:"confirms"`
	Rejects   uint64              `json:"rejects"`
	Undecided uint64              `json:"undecided"`
	Version   uint64              `json:"version"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewIdentity returns an empty identity with full stability.
func NewIdentity() Identity {
	return Identity{Stability: 1}
}

// Interactions returns the total number of votes recorded.
func (id Identity) Interactions() uint64 {
	return id.Confirms + id.Rejects + id.Undecided
}

// Feedback is one vote on a candidate.
type Feedback struct {
	EvaluationID string              `json:"evaluation_id"`
	Vote         Vote                `json:"vote"`
	Embedding    embedding.Embedding `json:"embedding"`
	Category     string              `json:"category"`
	Reason       ReturnReason        `json:"reason,omitempty"`
}

// Pending is a deferred reinforcement for an anchor category.
type Pending struct {
	ID           string              `json:"id"`
	EvaluationID string              `json:"evaluation_id"`
	Vote         Vote                `json:"vote"`
	Embedding    embedding.Embedding `json:"embedding"`
	Category     string              `json:"category"`
	CreatedAt    time.Time           `json:"created_at"`
	UnlockAt     time.Time           `json:"unlock_at"`
}

// Due reports whether the dwell period has elapsed at now.
func (p Pending) Due(now time.Time) bool {
	return !now.Before(p.UnlockAt)
}

// PendingQueue holds pending records keyed by evaluation id.
// The zero value is ready to use. It is not safe for concurrent use.
type PendingQueue struct {
	items map[string]Pending
}

// NewPendingQueue builds a queue from persisted records. Later duplicates win.
func NewPendingQueue(records []Pending) PendingQueue {
	q := PendingQueue{}
	for _, p := range records {
		q.Put(p)
	}
	return q
}

// Put stores p, replacing any record for the same evaluation. Callers that
// must not lose a record check Has first.
func (q *PendingQueue) Put(p Pending) {
	if q.items == nil {
		q.items = make(map[string]Pending)
	}
	q.items[p.EvaluationID] = p
}

// Get returns the record for an evaluation.
func (q *PendingQueue) Get(evaluationID string) (Pending, bool) {
	p, ok := q.items[evaluationID]
	return p, ok
}

// Has reports whether a record exists for an evaluation.
func (q *PendingQueue) Has(evaluationID string) bool {
	_, ok := q.items[evaluationID]
	return ok
}

// Remove deletes and returns the record for an evaluation.
func (q *PendingQueue) Remove(evaluationID string) (Pending, bool) {
	p, ok := q.items[evaluationID]
	if ok {
		delete(q.items, evaluationID)
	}
	return p, ok
}

// Len returns the number of pending records.
func (q *PendingQueue) Len() int {
	return len(q.items)
}

// List returns a copy of every record ordered by unlock time, then evaluation id.
func (q *PendingQueue) List() []Pending {
	out := make([]Pending, 0, len(q.items))
	for _, p := range q.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UnlockAt.Equal(out[j].UnlockAt) {
			return out[i].UnlockAt.Before(out[j].UnlockAt)
		}
		return out[i].EvaluationID < out[j].EvaluationID
	})
	return out
}

// Due returns the records unlocked at now, in List order.
func (q *PendingQueue) Due(now time.Time) []Pending {
	var due []Pending
	for _, p := range q.List() {
		if p.Due(now) {
			due = append(due, p)
		}
	}
	return due
}
