package redis

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/merchly/console-backend/internal/types"
)

func TestDraftKey(t *testing.T) {
	merchantID := uuid.MustParse("5a0ddd96-0c43-4c52-8b4a-2c9c24533fc1")
	quizID := uuid.MustParse("9d9e74a2-6f4b-42bd-a2ad-21e9de91f85a")
	key := draftKey(merchantID, quizID)
	want := "quiz-builder-draft:5a0ddd96-0c43-4c52-8b4a-2c9c24533fc1:9d9e74a2-6f4b-42bd-a2ad-21e9de91f85a"
	if key != want {
		t.Fatalf("draftKey=%q, want %q", key, want)
	}
}

func TestDraftEnvelopeRoundTrip(t *testing.T) {
	doc := types.QuizDocument{
		QuizDetails: types.QuizDetails{Name: "Roast finder"},
		Questions:   []types.Question{{ID: 1, Title: "Color?"}},
	}

	raw, err := encodeDraft(doc, 4)
	if err != nil {
		t.Fatalf("encodeDraft: %v", err)
	}
	if !strings.Contains(string(raw), `"currentStep":4`) {
		t.Fatalf("currentStep not merged into stored document: %s", raw)
	}

	restored, step, err := decodeDraft(raw)
	if err != nil {
		t.Fatalf("decodeDraft: %v", err)
	}
	if step != 4 {
		t.Fatalf("step=%d, want 4", step)
	}
	if restored.CurrentStep != 0 {
		t.Fatalf("restored document still carries currentStep=%d", restored.CurrentStep)
	}
	if restored.QuizDetails.Name != "Roast finder" || len(restored.Questions) != 1 {
		t.Fatalf("restored document: %+v", restored)
	}
}

func TestDecodeDraftMalformed(t *testing.T) {
	if _, _, err := decodeDraft([]byte(`{"questions":`)); err == nil {
		t.Fatalf("malformed draft should fail to decode")
	}
}

func TestEncodeDraftDoesNotMutateInput(t *testing.T) {
	doc := types.QuizDocument{QuizDetails: types.QuizDetails{Name: "Roast finder"}}
	if _, err := encodeDraft(doc, 2); err != nil {
		t.Fatalf("encodeDraft: %v", err)
	}
	if doc.CurrentStep != 0 {
		t.Fatalf("caller document mutated: currentStep=%d", doc.CurrentStep)
	}
}

func TestDraftTTL(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		unset  bool
		expect time.Duration
	}{
		{name: "unset uses two weeks", unset: true, expect: 14 * 24 * time.Hour},
		{name: "explicit hours", value: "48", expect: 48 * time.Hour},
		{name: "garbage falls back", value: "soon", expect: 14 * 24 * time.Hour},
		{name: "zero falls back", value: "0", expect: 14 * 24 * time.Hour},
		{name: "negative falls back", value: "-6", expect: 14 * 24 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.unset {
				os.Unsetenv("DRAFT_TTL_HOURS")
			} else {
				t.Setenv("DRAFT_TTL_HOURS", tc.value)
			}
			if got := draftTTL(nil); got != tc.expect {
				t.Fatalf("draftTTL()=%v, want %v", got, tc.expect)
			}
		})
	}
}
