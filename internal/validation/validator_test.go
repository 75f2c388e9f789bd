// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package validation

import (
	"strings"
	"testing"
)

type voteFixture struct {
	EvaluationID string    `json:"evaluation_id" validate:"required,max=16"`
	Vote         string    `json:"vote" validate:"required,vote"`
	Reason       string    `json:"reason" validate:"omitempty,return_reason"`
	Domain       string    `json:"domain" validate:"required,domain"`
	Signal       []float64 `json:"signal" validate:"required,len=3,dive,gte=0,lte=1"`
}

type configFixture struct {
	Level   string `koanf:"level" validate:"loglevel"`
	Policy  string `koanf:"policy" validate:"advisory_level"`
	Workers int    `validate:"min=1,max=8"`
	Ignored string `json:"-" validate:"required"`
}

func validVote() voteFixture {
	return voteFixture{
		EvaluationID: "e-1",
		Vote:         "confirm",
		Domain:       "style",
		Signal:       []float64{0, 0.5, 1},
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	v := validVote()
	v.Vote = "Returned"
	v.Reason = "size"
	if err := ValidateStruct(&v); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*voteFixture)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing evaluation id",
			mutate:    func(v *voteFixture) { v.EvaluationID = "" },
			wantField: "evaluation_id",
			wantTag:   "required",
			wantMsg:   "evaluation_id is required",
		},
		{
			name:      "evaluation id too long",
			mutate:    func(v *voteFixture) { v.EvaluationID = strings.Repeat("x", 17) },
			wantField: "evaluation_id",
			wantTag:   "max",
			wantMsg:   "evaluation_id must be at most 16 characters",
		},
		{
			name:      "unknown vote",
			mutate:    func(v *voteFixture) { v.Vote = "maybe" },
			wantField: "vote",
			wantTag:   "vote",
			wantMsg:   "vote must be a valid vote",
		},
		{
			name:      "unknown reason",
			mutate:    func(v *voteFixture) { v.Reason = "boredom" },
			wantField: "reason",
			wantTag:   "return_reason",
			wantMsg:   "reason must be a valid return reason",
		},
		{
			name:      "unknown domain",
			mutate:    func(v *voteFixture) { v.Domain = "garden" },
			wantField: "domain",
			wantTag:   "domain",
			wantMsg:   "domain must be one of: style, space",
		},
		{
			name:      "wrong signal length",
			mutate:    func(v *voteFixture) { v.Signal = []float64{0.5} },
			wantField: "signal",
			wantTag:   "len",
			wantMsg:   "signal must have exactly 3 items",
		},
		{
			name:      "signal out of range",
			mutate:    func(v *voteFixture) { v.Signal = []float64{0, 1.5, 0} },
			wantField: "signal[1]",
			wantTag:   "lte",
			wantMsg:   "signal[1] must be less than or equal to 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVote()
			tt.mutate(&v)

			verr := ValidateStruct(&v)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_KoanfNamesAndCustomTags(t *testing.T) {
	ok := configFixture{Level: "debug", Policy: "strict", Workers: 2, Ignored: "x"}
	if err := ValidateStruct(&ok); err != nil {
		t.Fatalf("ValidateStruct() = %v", err)
	}

	bad := configFixture{Level: "loud", Policy: "lenient", Workers: 0, Ignored: "x"}
	verr := ValidateStruct(&bad)
	if verr == nil {
		t.Fatal("expected errors")
	}
	got := map[string]string{}
	for _, e := range verr.Errors() {
		got[e.Field()] = e.Error()
	}
	want := map[string]string{
		"level":   "level must be a valid log level",
		"policy":  "policy must be one of: soft, standard, strict",
		"Workers": "Workers must be at least 1",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s message = %q, want %q", field, got[field], msg)
		}
	}
}

func TestToAPIError(t *testing.T) {
	v := validVote()
	v.Vote = ""
	single := ValidateStruct(&v).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Message != "vote is required" {
		t.Errorf("single = %+v", single)
	}
	if single.Details["field"] != "vote" {
		t.Errorf("single details = %v", single.Details)
	}

	v.Domain = ""
	multi := ValidateStruct(&v).ToAPIError()
	if !strings.Contains(multi.Message, "vote is required") || !strings.Contains(multi.Message, "domain is required") {
		t.Errorf("multi message = %q", multi.Message)
	}
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("multi details = %v", multi.Details)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty Error() mismatch")
	}
}
