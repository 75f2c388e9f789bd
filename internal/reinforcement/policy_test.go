// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reinforcement

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/tastegraph/internal/embedding"
)

var testNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func candidate(seed float64) embedding.Embedding {
	return embedding.Project(embedding.Signal{seed, 1 - seed, 0.5, seed, 0.2, 0.8, seed, 0.4, 0.6, 1 - seed, 0.3})
}

func TestApply_ConfirmTowardSelfIsUnchanged(t *testing.T) {
	id := NewIdentity()
	id.Positive = candidate(0.3)

	next, pending := Apply(id, Feedback{EvaluationID: "e1", Vote: VoteConfirm, Embedding: id.Positive, Category: "tops"}, testNow)

	if pending != nil {
		t.Fatal("non-anchor confirm produced a pending record")
	}
	if next.Positive != id.Positive {
		t.Error("positive embedding changed on blend toward itself")
	}
	if next.Confirms != 1 || next.Version != 1 {
		t.Errorf("Confirms = %d, Version = %d; want 1, 1", next.Confirms, next.Version)
	}
	if next.Stability != 1 {
		t.Errorf("Stability = %f, want 1", next.Stability)
	}
}

func TestApply_AnchorDeferral(t *testing.T) {
	tests := []struct {
		name string
		vote Vote
	}{
		{"confirm", VoteConfirm},
		{"reject", VoteReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewIdentity()
			c := candidate(0.9)
			next, pending := Apply(id, Feedback{EvaluationID: "sofa-1", Vote: tt.vote, Embedding: c, Category: "Furniture"}, testNow)

			if pending == nil {
				t.Fatal("anchor vote did not produce a pending record")
			}
			if next.Positive != id.Positive || next.Anti != id.Anti {
				t.Error("anchor vote mutated an embedding")
			}
			if next.Version != id.Version+1 {
				t.Errorf("Version = %d, want %d", next.Version, id.Version+1)
			}
			if !pending.UnlockAt.Equal(testNow.Add(14 * 24 * time.Hour)) {
				t.Errorf("UnlockAt = %s", pending.UnlockAt)
			}
			if pending.Embedding != c || pending.Vote != tt.vote || pending.ID == "" {
				t.Errorf("pending record = %+v", pending)
			}

			final := Finalize(next, *pending, testNow.Add(15*24*time.Hour))
			if final.Version != next.Version+1 {
				t.Errorf("Finalize Version = %d, want %d", final.Version, next.Version+1)
			}
			switch tt.vote {
			case VoteConfirm:
				if final.Positive == next.Positive {
					t.Error("Finalize did not move the positive embedding")
				}
				if final.Confirms != next.Confirms {
					t.Error("Finalize changed the confirm counter")
				}
			case VoteReject:
				if final.Anti == next.Anti {
					t.Error("Finalize did not move the anti-embedding")
				}
			}
		})
	}
}

func TestFinalize_UsesAmplifiedRate(t *testing.T) {
	id := NewIdentity()
	var target embedding.Embedding
	target[0] = 1

	final := Finalize(id, Pending{Vote: VoteConfirm, Embedding: target}, testNow)
	want := 0.18 * 1.8
	if math.Abs(final.Positive[0]-want) > 1e-12 {
		t.Errorf("Positive[0] = %f, want %f", final.Positive[0], want)
	}
}

func TestApply_Counters(t *testing.T) {
	c := candidate(0.7)
	tests := []struct {
		name          string
		fb            Feedback
		wantConfirms  uint64
		wantRejects   uint64
		wantUndecided uint64
		wantPosMoved  bool
		wantAntiMoved bool
	}{
		{"confirm", Feedback{Vote: VoteConfirm, Embedding: c, Category: "tops"}, 1, 0, 0, true, false},
		{"reject", Feedback{Vote: VoteReject, Embedding: c, Category: "tops"}, 0, 1, 0, false, true},
		{"weak confirm", Feedback{Vote: VoteWeakConfirm, Embedding: c, Category: "tops"}, 0, 0, 1, true, false},
		{"weak confirm on anchor", Feedback{Vote: VoteWeakConfirm, Embedding: c, Category: "artwork"}, 0, 0, 1, true, false},
		{"returned for style", Feedback{Vote: VoteReturned, Embedding: c, Category: "tops", Reason: ReasonColor}, 0, 1, 0, false, true},
		{"returned for size", Feedback{Vote: VoteReturned, Embedding: c, Category: "tops", Reason: ReasonSize}, 0, 1, 0, false, false},
		{"returned anchor for style", Feedback{Vote: VoteReturned, Embedding: c, Category: "outerwear", Reason: ReasonSilhouette}, 0, 1, 0, false, true},
		{"returned without reason", Feedback{Vote: VoteReturned, Embedding: c, Category: "tops"}, 0, 1, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewIdentity()
			next, pending := Apply(id, tt.fb, testNow)

			if pending != nil {
				t.Error("unexpected pending record")
			}
			if next.Confirms != tt.wantConfirms || next.Rejects != tt.wantRejects || next.Undecided != tt.wantUndecided {
				t.Errorf("counters = %d/%d/%d", next.Confirms, next.Rejects, next.Undecided)
			}
			if moved := next.Positive != id.Positive; moved != tt.wantPosMoved {
				t.Errorf("positive moved = %v, want %v", moved, tt.wantPosMoved)
			}
			if moved := next.Anti != id.Anti; moved != tt.wantAntiMoved {
				t.Errorf("anti moved = %v, want %v", moved, tt.wantAntiMoved)
			}
			if next.Version != 1 {
				t.Errorf("Version = %d, want 1", next.Version)
			}
		})
	}
}

func TestApply_VersionMonotonic(t *testing.T) {
	votes := []Vote{VoteConfirm, VoteReject, VoteWeakConfirm, VoteReturned, VoteConfirm}
	categories := []string{"tops", "furniture", "shoes", "artwork"}

	id := NewIdentity()
	for i := 0; i < 40; i++ {
		fb := Feedback{
			Vote:      votes[i%len(votes)],
			Embedding: candidate(float64(i%10) / 10),
			Category:  categories[i%len(categories)],
			Reason:    ReasonStyle,
		}
		next, _ := Apply(id, fb, testNow)
		if next.Version != id.Version+1 {
			t.Fatalf("step %d: version %d -> %d", i, id.Version, next.Version)
		}
		if next.Confirms < id.Confirms || next.Rejects < id.Rejects || next.Undecided < id.Undecided {
			t.Fatalf("step %d: a counter decreased", i)
		}
		if next.Stability < 0 || next.Stability > 1 {
			t.Fatalf("step %d: stability %f out of range", i, next.Stability)
		}
		id = next
	}
}

func TestApply_StabilityDropsOnLargeMove(t *testing.T) {
	id := NewIdentity()
	var far embedding.Embedding
	for i := range far {
		far[i] = 1
	}
	next, _ := Apply(id, Feedback{Vote: VoteConfirm, Embedding: far, Category: "tops"}, testNow)

	// mean |delta| = 0.18, so the fresh term clamps to 0
	if math.Abs(next.Stability-0.9) > 1e-12 {
		t.Errorf("Stability = %f, want 0.9", next.Stability)
	}
}

func TestParseVote(t *testing.T) {
	if v, err := ParseVote(" Weak_Confirm "); err != nil || v != VoteWeakConfirm {
		t.Errorf("ParseVote() = %q, %v", v, err)
	}
	if _, err := ParseVote("maybe"); !errors.Is(err, ErrUnknownVote) {
		t.Errorf("ParseVote(maybe) error = %v", err)
	}
}

func TestParseReturnReason(t *testing.T) {
	tests := []struct {
		in      string
		want    ReturnReason
		wantErr bool
	}{
		{"Style", ReasonStyle, false},
		{" fit ", ReasonFit, false},
		{"", "", false},
		{"boredom", "", true},
	}
	for _, tt := range tests {
		got, err := ParseReturnReason(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReturnReason(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownReason) {
			t.Errorf("ParseReturnReason(%q) error %v does not wrap ErrUnknownReason", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseReturnReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReturnReason_StyleRelated(t *testing.T) {
	styled := []ReturnReason{ReasonStyle, ReasonColor, ReasonPattern, ReasonSilhouette, ReasonMaterial, "COLOR"}
	for _, r := range styled {
		if !r.StyleRelated() {
			t.Errorf("%q should be style related", r)
		}
	}
	plain := []ReturnReason{ReasonSize, ReasonFit, ReasonDefect, ReasonDamaged, ReasonLate, ReasonPrice, ReasonOther, ""}
	for _, r := range plain {
		if r.StyleRelated() {
			t.Errorf("%q should not be style related", r)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero alpha", func(c *Config) { c.Alpha = 0 }, true},
		{"amplified over one", func(c *Config) { c.Gamma = 0.6 }, true},
		{"multiplier below one", func(c *Config) { c.FinalizeMultiplier = 0.5 }, true},
		{"negative dwell", func(c *Config) { c.Dwell = -time.Hour }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPendingQueue(t *testing.T) {
	var q PendingQueue
	q.Put(Pending{EvaluationID: "b", UnlockAt: testNow.Add(time.Hour)})
	q.Put(Pending{EvaluationID: "a", UnlockAt: testNow.Add(time.Hour)})
	q.Put(Pending{EvaluationID: "c", UnlockAt: testNow.Add(-time.Hour)})

	list := q.List()
	if len(list) != 3 || list[0].EvaluationID != "c" || list[1].EvaluationID != "a" {
		t.Errorf("List() order = %v", list)
	}
	if due := q.Due(testNow); len(due) != 1 || due[0].EvaluationID != "c" {
		t.Errorf("Due() = %v", due)
	}
	if _, ok := q.Remove("c"); !ok || q.Len() != 2 {
		t.Error("Remove() failed")
	}
	if _, ok := q.Remove("c"); ok {
		t.Error("second Remove() should report missing")
	}
}
