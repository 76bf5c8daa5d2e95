package quizgraph

import (
	"testing"

	"github.com/merchly/console-backend/internal/types"
)

func fixtureDocument() types.QuizDocument {
	return types.QuizDocument{
		QuizDetails: types.QuizDetails{Name: "Find your roast", Slug: "find-your-roast"},
		Questions: []types.Question{
			{
				ID:       10,
				Title:    "Color?",
				StepType: "question",
				Type:     types.QuestionTypeSingleChoice,
				Options:  []types.Option{types.BareOption("Red"), types.BareOption("Blue")},
			},
			{
				ID:       20,
				Title:    "Size?",
				StepType: "question",
				Type:     "text",
			},
		},
		Results: []types.Result{
			{ID: 5, Title: "Winner", IsDefault: true},
		},
		Logic: types.EdgeSet{Edges: []types.Edge{
			{Source: "question-10", SourceHandle: "option-0", Target: "question-20"},
		}},
		LogicResults: types.EdgeSet{Edges: []types.Edge{
			{Source: "question-10", Target: "result-5-out"},
		}},
	}
}

func TestResolveQuestionLinks(t *testing.T) {
	doc := fixtureDocument()
	links := ResolveQuestionLinks(doc)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	link := links[0]
	if link.From.QuestionNumber != 1 || link.From.QuestionID != 10 || link.From.QuestionTitle != "Color?" {
		t.Fatalf("unexpected source: %+v", link.From)
	}
	if link.From.Option == nil || link.From.Option.Index != 1 || link.From.Option.Text != "Red" {
		t.Fatalf("unexpected option: %+v", link.From.Option)
	}
	if link.To.QuestionNumber != 2 || link.To.QuestionID != 20 || link.To.QuestionTitle != "Size?" {
		t.Fatalf("unexpected target: %+v", link.To)
	}
}

func TestResolveResultLinks(t *testing.T) {
	doc := fixtureDocument()
	links := ResolveResultLinks(doc)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	link := links[0]
	if link.From.QuestionNumber != 1 || link.From.Option != nil {
		t.Fatalf("unexpected source: %+v", link.From)
	}
	if link.To.ResultID != 5 || link.To.ResultTitle != "Winner" || !link.To.IsDefault {
		t.Fatalf("unexpected target: %+v", link.To)
	}
}

func TestResolveDropsDanglingEdges(t *testing.T) {
	cases := []struct {
		name string
		edge types.Edge
	}{
		{name: "missing_target_question", edge: types.Edge{Source: "question-10", Target: "question-999"}},
		{name: "missing_source_question", edge: types.Edge{Source: "question-999", Target: "question-20"}},
		{name: "malformed_source", edge: types.Edge{Source: "node-10", Target: "question-20"}},
		{name: "malformed_target", edge: types.Edge{Source: "question-10", Target: "somewhere"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := fixtureDocument()
			doc.Logic.Edges = []types.Edge{tc.edge}
			if links := ResolveQuestionLinks(doc); len(links) != 0 {
				t.Fatalf("got %d links, want 0", len(links))
			}
		})
	}
}

func TestResolveDropsDanglingResultEdges(t *testing.T) {
	cases := []struct {
		name string
		edge types.Edge
	}{
		{name: "missing_result", edge: types.Edge{Source: "question-10", Target: "result-999-out"}},
		{name: "malformed_result", edge: types.Edge{Source: "question-10", Target: "result-5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := fixtureDocument()
			doc.LogicResults.Edges = []types.Edge{tc.edge}
			if links := ResolveResultLinks(doc); len(links) != 0 {
				t.Fatalf("got %d links, want 0", len(links))
			}
		})
	}
}

func TestOutOfRangeOptionKeepsEdge(t *testing.T) {
	doc := fixtureDocument()
	doc.Logic.Edges = []types.Edge{
		{Source: "question-10", SourceHandle: "option-9", Target: "question-20"},
	}
	links := ResolveQuestionLinks(doc)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].From.Option != nil {
		t.Fatalf("option should be omitted for out-of-range index, got %+v", links[0].From.Option)
	}
}

func TestLookupByIDNotPosition(t *testing.T) {
	doc := fixtureDocument()
	// Reorder the questions; ids stay put, display numbers follow position.
	doc.Questions[0], doc.Questions[1] = doc.Questions[1], doc.Questions[0]
	links := ResolveQuestionLinks(doc)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].From.QuestionID != 10 || links[0].From.QuestionNumber != 2 {
		t.Fatalf("unexpected source after reorder: %+v", links[0].From)
	}
	if links[0].To.QuestionID != 20 || links[0].To.QuestionNumber != 1 {
		t.Fatalf("unexpected target after reorder: %+v", links[0].To)
	}
}

func TestDisplayFallbacks(t *testing.T) {
	doc := types.QuizDocument{
		Questions: []types.Question{
			{ID: 1, Type: types.QuestionTypeSingleChoice, Options: []types.Option{types.BareOption("")}},
			{ID: 2},
		},
		Results: []types.Result{{ID: 3}},
		Logic: types.EdgeSet{Edges: []types.Edge{
			{Source: "question-1", SourceHandle: "option-0", Target: "question-2"},
		}},
		LogicResults: types.EdgeSet{Edges: []types.Edge{
			{Source: "question-2", Target: "result-3-out"},
		}},
	}
	links := ResolveQuestionLinks(doc)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	from := links[0].From
	if from.QuestionTitle != "Question 1" {
		t.Fatalf("source title fallback: got %q", from.QuestionTitle)
	}
	if from.Option == nil || from.Option.Text != "Option 1" {
		t.Fatalf("option text fallback: got %+v", from.Option)
	}
	if links[0].To.QuestionTitle != "Question 2" {
		t.Fatalf("target title fallback: got %q", links[0].To.QuestionTitle)
	}

	resultLinks := ResolveResultLinks(doc)
	if len(resultLinks) != 1 {
		t.Fatalf("got %d result links, want 1", len(resultLinks))
	}
	if resultLinks[0].To.ResultTitle != "Untitled Result" {
		t.Fatalf("result title fallback: got %q", resultLinks[0].To.ResultTitle)
	}
}

func TestRecordOptionText(t *testing.T) {
	doc := fixtureDocument()
	doc.Questions[0].Options = []types.Option{
		{Text: "Dark roast", Image: "roast.png", HasImage: true},
		{},
	}
	doc.Logic.Edges = []types.Edge{
		{Source: "question-10", SourceHandle: "option-0", Target: "question-20"},
		{Source: "question-10", SourceHandle: "option-1", Target: "question-20"},
	}
	links := ResolveQuestionLinks(doc)
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].From.Option.Text != "Dark roast" {
		t.Fatalf("record option text: got %q", links[0].From.Option.Text)
	}
	if links[1].From.Option.Text != "Option 2" {
		t.Fatalf("blank record option fallback: got %q", links[1].From.Option.Text)
	}
}

func TestEdgeOrderPreserved(t *testing.T) {
	doc := fixtureDocument()
	doc.Logic.Edges = []types.Edge{
		{Source: "question-20", Target: "question-10"},
		{Source: "question-10", Target: "question-20"},
	}
	links := ResolveQuestionLinks(doc)
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].From.QuestionID != 20 || links[1].From.QuestionID != 10 {
		t.Fatalf("edge order not preserved: %+v", links)
	}
}
