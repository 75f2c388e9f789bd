// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tastegraph/internal/embedding"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

// IdentityResponse describes a profile's reinforcement state.
type IdentityResponse struct {
	ProfileID    string                  `json:"profile_id"`
	Identity     reinforcement.Identity  `json:"identity"`
	Interactions uint64                  `json:"interactions"`
	Pending      []reinforcement.Pending `json:"pending"`
}

// VoteResponse is the result of a vote. Pending is set when the vote was
// deferred for an anchor category.
type VoteResponse struct {
	Identity reinforcement.Identity `json:"identity"`
	Deferred bool                   `json:"deferred"`
	Pending  *reinforcement.Pending `json:"pending,omitempty"`
}

// Identity handles GET /api/v1/profiles/{id}/identity.
func (h *Handler) Identity(w http.ResponseWriter, r *http.Request) {
	svc, err := h.registry.Service(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	snap := svc.Snapshot()
	pending := snap.Pending
	if pending == nil {
		pending = []reinforcement.Pending{}
	}
	NewResponseWriter(w, r).Success(IdentityResponse{
		ProfileID:    snap.ProfileID,
		Identity:     snap.Identity,
		Interactions: snap.Identity.Interactions(),
		Pending:      pending,
	})
}

// Vote handles POST /api/v1/profiles/{id}/votes. The candidate signal is
// projected to an embedding server-side so clients never send embeddings.
// An anchor vote on an evaluation that is still pending is a conflict.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vote, err := reinforcement.ParseVote(req.Vote)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reason, err := reinforcement.ParseReturnReason(req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}

	svc, err := h.registry.Service(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, pending, err := svc.Apply(r.Context(), reinforcement.Feedback{
		EvaluationID: req.EvaluationID,
		Vote:         vote,
		Embedding:    embedding.ProjectOrNeutral(r.Context(), embedding.SliceProducer(req.Signal)),
		Category:     req.Category,
		Reason:       reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Success(VoteResponse{
		Identity: id,
		Deferred: pending != nil,
		Pending:  pending,
	})
}

// DiscardResponse reports a dropped pending reinforcement.
type DiscardResponse struct {
	EvaluationID string `json:"evaluation_id"`
	Remaining    int    `json:"remaining"`
}

// DiscardPending handles DELETE /api/v1/profiles/{id}/pending/{eval}. The
// record is dropped without touching the embeddings.
func (h *Handler) DiscardPending(w http.ResponseWriter, r *http.Request) {
	svc, err := h.registry.Service(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	eval := chi.URLParam(r, "eval")
	if err := svc.Discard(r.Context(), eval); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(DiscardResponse{
		EvaluationID: eval,
		Remaining:    svc.PendingCount(),
	})
}

// FinalizePending handles POST /api/v1/profiles/{id}/pending/{eval}/finalize.
// Finalizing before the dwell elapses is allowed.
func (h *Handler) FinalizePending(w http.ResponseWriter, r *http.Request) {
	svc, err := h.registry.Service(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := svc.Finalize(r.Context(), chi.URLParam(r, "eval"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(id)
}
