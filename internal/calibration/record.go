// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package calibration

import (
	"time"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/naming"
)

// Record is the persisted outcome of calibration for one profile and domain.
// Vector holds raw accumulated axis weights; read it through Scores.
type Record struct {
	ProfileID    string       `json:"profile_id"`
	Domain       axis.Domain  `json:"domain"`
	Vector       axis.Vector  `json:"vector"`
	Interactions int          `json:"interactions"`
	Name         naming.State `json:"name"`
	Completed    bool         `json:"completed"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Scores returns the record's axis scores with the strongest axis at -1 or 1.
// Keys that are not axes of the domain are ignored.
//
//nolint:gocritic // hugeParam: value receiver keeps Record immutable
func (r Record) Scores() axis.Scores {
	return axis.FromVector(r.Domain, r.Vector.Normalize())
}

// Clone returns a deep copy.
//
//nolint:gocritic // hugeParam: value receiver keeps Record immutable
func (r Record) Clone() Record {
	out := r
	out.Vector = r.Vector.Clone()
	out.Name.History = append([]string(nil), r.Name.History...)
	return out
}
