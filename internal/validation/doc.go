// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is built once and shared; it caches struct
metadata, so repeated validation of request and config types is cheap.

Field names in errors come from json tags (falling back to koanf tags and
then the Go field name), so messages refer to the keys clients actually send:

	type voteRequest struct {
	    EvaluationID string    `json:"evaluation_id" validate:"required,max=128"`
	    Vote         string    `json:"vote" validate:"required,vote"`
	    Signal       []float64 `json:"signal" validate:"required,len=11,dive,gte=0,lte=1"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // apiErr.Code == "VALIDATION_ERROR", apiErr.Message == "vote must be a valid vote"
	}

# Custom Tags

	domain            an axis domain name (style, space)
	vote              a reinforcement vote (confirm, reject, weak_confirm, returned)
	return_reason     a return reason (style, size, fit, ...)
	advisory_level    an advisory level (soft, standard, strict)
	advisory_outcome  an advisory outcome (proceeded, override, abandoned)
	loglevel          a logging level name
*/
package validation
