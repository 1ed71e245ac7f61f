package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCanTransitionFatwah(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{FatwahDraft, FatwahPending, true},
		{FatwahPending, FatwahPublished, true},
		{FatwahPending, FatwahDraft, true},
		{FatwahPublished, FatwahDraft, true},

		{FatwahDraft, FatwahPublished, false}, // must pass through pending
		{FatwahPublished, FatwahPending, false},
		{FatwahDraft, FatwahDraft, false},
		{FatwahDraft, "archived", false},
	}

	for _, tc := range cases {
		if got := CanTransitionFatwah(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionFatwah(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestFatwahPublicNeverCarriesEmail(t *testing.T) {
	f := Fatwah{
		Question:   "Is this permissible?",
		Answer:     "Yes.",
		AskerName:  "Ahmed",
		AskerEmail: "ahmed@example.com",
		AnsweredBy: "mufti@maktabapublishers.in",
		Categories: []string{"general"},
		Status:     FatwahPublished,
		CreatedAt:  time.Now(),
	}

	raw, err := json.Marshal(f.Public())
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	if strings.Contains(body, "ahmed@example.com") {
		t.Error("asker email leaked into the public serialization")
	}
	if strings.Contains(body, "mufti@maktabapublishers.in") {
		t.Error("answerer identity leaked into the public serialization")
	}
	if !strings.Contains(body, "Ahmed") {
		t.Error("asker name should survive for attribution")
	}
}

func TestIsFatwahCategory(t *testing.T) {
	if !IsFatwahCategory("zakat") {
		t.Error("zakat should be a known category")
	}
	if IsFatwahCategory("Zakat") {
		t.Error("categories are case sensitive")
	}
	if IsFatwahCategory("") {
		t.Error("empty string is not a category")
	}
}
