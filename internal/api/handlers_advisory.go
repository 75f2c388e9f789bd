// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/embedding"
	"github.com/tomtom215/tastegraph/internal/metrics"
)

// AdvisoryResponse is the advisory verdict for one candidate.
type AdvisoryResponse struct {
	Level      advisory.Level          `json:"level"`
	Scores     axis.Scores             `json:"scores"`
	Assessment advisory.Assessment     `json:"assessment"`
	Conflict   advisory.ConflictResult `json:"conflict"`
	Tolerance  advisory.Tolerance      `json:"tolerance"`
	Decision   advisory.Decision       `json:"decision"`
}

// AdvisoryOutcomeResponse is the tolerance state after an outcome was
// recorded. The counts cover the last seven days.
type AdvisoryOutcomeResponse struct {
	Outcome   advisory.Outcome   `json:"outcome"`
	Tolerance advisory.Tolerance `json:"tolerance"`
	Overrides int                `json:"overrides_7d"`
	Abandoned int                `json:"abandoned_7d"`
}

// Advisory handles POST /api/v1/profiles/{id}/advisory. The candidate's tags
// are mapped to axis scores and compared with the profile's calibrated
// scores. A candidate signal also compares it with the embeddings learned
// from votes. The profile's stored tolerance shifts the thresholds.
func (h *Handler) Advisory(w http.ResponseWriter, r *http.Request) {
	var req AdvisoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	d, err := axis.ParseDomain(req.Domain)
	if err != nil {
		writeError(w, r, err)
		return
	}
	level := h.defaultLevel
	if req.Level != "" {
		if level, err = advisory.ParseLevel(req.Level); err != nil {
			writeError(w, r, err)
			return
		}
	}

	pid := profileID(r)
	profile, err := h.registry.Profile(r.Context(), pid, d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	history, err := h.registry.AdvisoryHistory(r.Context(), pid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	candidate := axis.Map(d, axis.Vector(req.Tags))
	conflict := advisory.Conflict(candidate, profile.Scores)
	if len(req.Signal) > 0 {
		e := embedding.ProjectOrNeutral(r.Context(), embedding.SliceProducer(req.Signal))
		if share, affinity := profile.Taste(e); share > 0 {
			conflict = conflict.WithTaste(affinity, share)
		}
	}
	decision := advisory.Decide(level, conflict, history.Tolerance.Value)
	metrics.RecordAdvisory(string(level), decision.Verdict.String())

	NewResponseWriter(w, r).Success(AdvisoryResponse{
		Level:      level,
		Scores:     candidate,
		Assessment: advisory.Score(candidate.Vector(), profile.Scores.Vector()),
		Conflict:   conflict,
		Tolerance:  history.Tolerance,
		Decision:   decision,
	})
}

// AdvisoryOutcome handles POST /api/v1/profiles/{id}/advisory/outcome. It
// records what the user did after an advisory; overrides loosen and
// abandonments tighten the profile's tolerance, at most once a day.
func (h *Handler) AdvisoryOutcome(w http.ResponseWriter, r *http.Request) {
	var req AdvisoryOutcomeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := advisory.ParseOutcome(req.Outcome)
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := h.registry.RecordAdvisoryOutcome(r.Context(), profileID(r), outcome)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RecordAdvisoryOutcome(string(outcome))

	NewResponseWriter(w, r).Success(AdvisoryOutcomeResponse{
		Outcome:   outcome,
		Tolerance: history.Tolerance,
		Overrides: len(history.Overrides),
		Abandoned: len(history.Abandoned),
	})
}
