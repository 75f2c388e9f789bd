// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// VoteRequest is the body of POST /profiles/{id}/votes. Signal holds the
// eleven visual statistics of the evaluated candidate, each in [0, 1].
type VoteRequest struct {
	EvaluationID string    `json:"evaluation_id" validate:"required,max=128"`
	Vote         string    `json:"vote" validate:"required,vote"`
	Signal       []float64 `json:"signal" validate:"required,len=11"`
	Category     string    `json:"category" validate:"max=64"`
	Reason       string    `json:"reason" validate:"omitempty,return_reason"`
}

// RecommendationsRequest is the body of POST /profiles/{id}/recommendations.
type RecommendationsRequest struct {
	Domain           string   `json:"domain" validate:"required,domain"`
	K                int      `json:"k" validate:"omitempty,min=1"`
	ExcludeFavorites bool     `json:"exclude_favorites"`
	ExcludeIDs       []string `json:"exclude_ids" validate:"max=500,dive,required"`
}

// AdvisoryRequest is the body of POST /profiles/{id}/advisory. Tags are the
// candidate's weighted vocabulary tags. Signal optionally carries the
// candidate's eleven visual statistics so it can be compared with the
// embeddings learned from votes. Tolerance is server-side state and is not
// accepted from clients.
type AdvisoryRequest struct {
	Domain string             `json:"domain" validate:"required,domain"`
	Tags   map[string]float64 `json:"tags" validate:"required,min=1"`
	Level  string             `json:"level" validate:"omitempty,advisory_level"`
	Signal []float64          `json:"signal" validate:"omitempty,len=11"`
}

// AdvisoryOutcomeRequest is the body of POST /profiles/{id}/advisory/outcome.
type AdvisoryOutcomeRequest struct {
	Outcome string `json:"outcome" validate:"required,advisory_outcome"`
}

// CalibrationStartRequest is the body of POST /profiles/{id}/calibration.
type CalibrationStartRequest struct {
	Domain string `json:"domain" validate:"required,domain"`
}

// SwipeRequest is the body of POST /profiles/{id}/calibration/swipe.
type SwipeRequest struct {
	Domain   string `json:"domain" validate:"required,domain"`
	Decision string `json:"decision" validate:"required,oneof=reject confirm strong_confirm"`
}

// DuelRequest is the body of POST /profiles/{id}/calibration/duel. Winner is
// the archetype key of the chosen side.
type DuelRequest struct {
	Domain string `json:"domain" validate:"required,domain"`
	Winner string `json:"winner" validate:"required,max=64"`
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		rw := NewResponseWriter(w, r)
		if errors.Is(err, ErrBodyTooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, err.Error())
			return false
		}
		rw.BadRequest(err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
