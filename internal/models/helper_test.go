package models

import (
	"reflect"
	"testing"
)

func TestAggregateRating_Empty(t *testing.T) {
	if got := AggregateRating(nil); got != 0 {
		t.Errorf("AggregateRating(nil) = %d, want 0", got)
	}
}

func TestAggregateRating_FloorOfMean(t *testing.T) {
	entries := []RatingEntry{
		{UserID: "u1", RatedValue: 5},
		{UserID: "u2", RatedValue: 4},
	}
	// mean 4.5, floored to 4
	if got := AggregateRating(entries); got != 4 {
		t.Errorf("AggregateRating = %d, want 4", got)
	}
}

func TestAggregateRating_IgnoresNonPositive(t *testing.T) {
	entries := []RatingEntry{
		{UserID: "u1", RatedValue: 0},
		{UserID: "u2", RatedValue: 3},
	}
	if got := AggregateRating(entries); got != 3 {
		t.Errorf("AggregateRating = %d, want 3", got)
	}

	allZero := []RatingEntry{
		{UserID: "u1", RatedValue: 0},
		{UserID: "u2", RatedValue: 0},
	}
	if got := AggregateRating(allZero); got != 0 {
		t.Errorf("AggregateRating all-zero = %d, want 0", got)
	}
}

func TestApplyRating_FirstRating(t *testing.T) {
	h := &Helper{}
	h.ApplyRating("u1", 4)

	if len(h.RatedUserIDs) != 1 {
		t.Fatalf("entries = %d, want 1", len(h.RatedUserIDs))
	}
	if h.Rating != 4 {
		t.Errorf("Rating = %d, want 4", h.Rating)
	}
}

func TestApplyRating_OverwritesSameRater(t *testing.T) {
	h := &Helper{}
	h.ApplyRating("u1", 5)
	h.ApplyRating("u2", 3)
	h.ApplyRating("u1", 1)

	if len(h.RatedUserIDs) != 2 {
		t.Fatalf("entries = %d, want 2", len(h.RatedUserIDs))
	}
	// mean of {1, 3} = 2
	if h.Rating != 2 {
		t.Errorf("Rating = %d, want 2", h.Rating)
	}
}

func TestApplyRating_UpdateKeepsEntryPosition(t *testing.T) {
	h := &Helper{}
	h.ApplyRating("u1", 5)
	h.ApplyRating("u2", 3)

	// re-rating u1 overwrites its entry where it sits, it does not move it
	h.ApplyRating("u1", 1)

	want := []RatingEntry{
		{UserID: "u1", RatedValue: 1},
		{UserID: "u2", RatedValue: 3},
	}
	if !reflect.DeepEqual(h.RatedUserIDs, want) {
		t.Errorf("entries = %+v, want %+v", h.RatedUserIDs, want)
	}
}

func TestApplyRating_ZeroExcludesRaterFromMean(t *testing.T) {
	h := &Helper{}
	h.ApplyRating("u1", 5)
	h.ApplyRating("u2", 3)

	h.ApplyRating("u1", 0)
	// only u2's 3 remains in the mean
	if h.Rating != 3 {
		t.Errorf("Rating = %d, want 3", h.Rating)
	}
	if len(h.RatedUserIDs) != 2 {
		t.Errorf("entries = %d, want 2 (zero entry kept, just excluded)", len(h.RatedUserIDs))
	}
}

func TestApplyRating_Idempotent(t *testing.T) {
	h := &Helper{}
	h.ApplyRating("u1", 5)
	h.ApplyRating("u2", 3)

	before := h.Rating
	h.ApplyRating("u2", 3)

	if h.Rating != before {
		t.Errorf("Rating changed on duplicate submission: %d -> %d", before, h.Rating)
	}
	if len(h.RatedUserIDs) != 2 {
		t.Errorf("entries = %d, want 2", len(h.RatedUserIDs))
	}
}
