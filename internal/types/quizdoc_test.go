package types

import (
	"encoding/json"
	"testing"
)

func TestOptionUnmarshalBothForms(t *testing.T) {
	var q Question
	raw := `{"id":1,"title":"Color?","type":"single-choice","options":["Red",{"text":"Blue","image":"blue.png","hasImage":true}]}`
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(q.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(q.Options))
	}
	if !q.Options[0].Bare() || q.Options[0].Text != "Red" {
		t.Fatalf("bare option: %+v", q.Options[0])
	}
	if q.Options[1].Bare() || q.Options[1].Text != "Blue" || !q.Options[1].HasImage {
		t.Fatalf("record option: %+v", q.Options[1])
	}
}

func TestOptionMarshalPreservesForm(t *testing.T) {
	opts := []Option{
		BareOption("Red"),
		{Text: "Blue", Image: "blue.png", ImageType: "png", HasImage: true},
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["Red",{"text":"Blue","image":"blue.png","imageType":"png","hasImage":true}]`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestHasOptions(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{in: QuestionTypeSingleChoice, want: true},
		{in: QuestionTypeMultipleChoice, want: true},
		{in: QuestionTypeTrueFalse, want: true},
		{in: QuestionTypeDropdownList, want: true},
		{in: "text", want: false},
		{in: "", want: false},
	}
	for _, tc := range cases {
		if got := HasOptions(tc.in); got != tc.want {
			t.Fatalf("HasOptions(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := QuizDocument{
		Questions: []Question{
			{ID: 1, Title: "Color?", Options: []Option{BareOption("Red")}},
		},
		Results: []Result{
			{ID: 2, Title: "Winner", Products: []ResultProduct{{ID: "p1", Images: []string{"a.png"}}}},
		},
		Logic: EdgeSet{Edges: []Edge{{Source: "question-1", Target: "question-1"}}},
	}
	clone := doc.Clone()
	clone.Questions[0].Options[0] = BareOption("Blue")
	clone.Results[0].Products[0].Images[0] = "b.png"
	clone.Logic.Edges[0].Source = "question-9"

	if doc.Questions[0].Options[0].Text != "Red" {
		t.Fatalf("clone shares options with original")
	}
	if doc.Results[0].Products[0].Images[0] != "a.png" {
		t.Fatalf("clone shares product images with original")
	}
	if doc.Logic.Edges[0].Source != "question-1" {
		t.Fatalf("clone shares edges with original")
	}
}
