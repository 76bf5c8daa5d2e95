package quizgraph

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/merchly/console-backend/internal/types"
)

func TestSanitizeStripsCurrentStep(t *testing.T) {
	doc := fixtureDocument()
	doc.CurrentStep = 3
	export := Sanitize(doc)
	raw, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "currentStep") {
		t.Fatalf("export document leaked currentStep: %s", raw)
	}
}

func TestSanitizeStepFields(t *testing.T) {
	doc := fixtureDocument()
	doc.Questions[0].Required = true
	export := Sanitize(doc)
	if len(export.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(export.Steps))
	}

	step := export.Steps[0]
	if step.StepType != "question" {
		t.Fatalf("stepType: got %q", step.StepType)
	}
	if step.QuestionType == nil || *step.QuestionType != types.QuestionTypeSingleChoice {
		t.Fatalf("questionType: got %v", step.QuestionType)
	}
	if len(step.Options) != 2 {
		t.Fatalf("options: got %d, want 2", len(step.Options))
	}

	raw, err := json.Marshal(step)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "required") {
		t.Fatalf("step leaked authoring-only required field: %s", raw)
	}
}

func TestSanitizeDropsStaleOptions(t *testing.T) {
	doc := fixtureDocument()
	// The question lost its choice type but kept stale options.
	doc.Questions[0].Type = "text"
	export := Sanitize(doc)
	if export.Steps[0].Options != nil {
		t.Fatalf("stale options survived: %+v", export.Steps[0].Options)
	}
	if export.Steps[0].QuestionType == nil || *export.Steps[0].QuestionType != "text" {
		t.Fatalf("questionType: got %v", export.Steps[0].QuestionType)
	}
}

func TestSanitizeNonQuestionStep(t *testing.T) {
	doc := fixtureDocument()
	doc.Questions[0].StepType = "info"
	export := Sanitize(doc)
	step := export.Steps[0]
	if step.QuestionType != nil {
		t.Fatalf("non-question step kept questionType: %v", *step.QuestionType)
	}
	if step.Options != nil {
		t.Fatalf("non-question step kept options: %+v", step.Options)
	}
}

func TestSanitizeLegacyStepType(t *testing.T) {
	doc := fixtureDocument()
	doc.Questions[0].StepType = ""
	export := Sanitize(doc)
	if export.Steps[0].StepType != "question" {
		t.Fatalf("legacy stepType: got %q", export.Steps[0].StepType)
	}
}

func TestSanitizeEmptyQuestionTypeKeepsKey(t *testing.T) {
	doc := fixtureDocument()
	doc.Questions[0].Type = ""
	export := Sanitize(doc)
	raw, err := json.Marshal(export.Steps[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"questionType":""`) {
		t.Fatalf("question step should keep an empty questionType key: %s", raw)
	}
}

func TestSanitizeOmitsEmptyFlow(t *testing.T) {
	doc := fixtureDocument()
	doc.Logic.Edges = nil
	doc.LogicResults.Edges = nil
	export := Sanitize(doc)
	raw, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"flow"`) || strings.Contains(string(raw), `"resultsFlow"`) {
		t.Fatalf("empty flow sets must be omitted: %s", raw)
	}
}

func TestSanitizeOmitsFlowWhenOnlyEdgeDangles(t *testing.T) {
	doc := fixtureDocument()
	doc.Logic.Edges = []types.Edge{{Source: "question-10", Target: "question-999"}}
	export := Sanitize(doc)
	if export.Flow != nil {
		t.Fatalf("dangling-only edge set should produce no flow: %+v", export.Flow)
	}
}

func TestSanitizeAttachesFlow(t *testing.T) {
	export := Sanitize(fixtureDocument())
	if len(export.Flow) != 1 || export.Flow[0].Flow != "Q1, O1 (Red) → Q2" {
		t.Fatalf("flow: %+v", export.Flow)
	}
	if len(export.ResultsFlow) != 1 || export.ResultsFlow[0].Flow != "Q1 → Winner" {
		t.Fatalf("resultsFlow: %+v", export.ResultsFlow)
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	doc := fixtureDocument()
	doc.CurrentStep = 2
	before, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_ = Sanitize(doc)
	after, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("input document changed:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	first := Sanitize(fixtureDocument())

	restored := DocumentFromExport(first)
	restored.CurrentStep = 1 // no-op editor state, stripped again on export
	second := Sanitize(restored)

	if !reflect.DeepEqual(first.Steps, second.Steps) {
		t.Fatalf("steps diverged:\nfirst:  %+v\nsecond: %+v", first.Steps, second.Steps)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Fatalf("results diverged:\nfirst:  %+v\nsecond: %+v", first.Results, second.Results)
	}
	if !reflect.DeepEqual(first.Logic, second.Logic) {
		t.Fatalf("logic diverged:\nfirst:  %+v\nsecond: %+v", first.Logic, second.Logic)
	}
	if !reflect.DeepEqual(first.Flow, second.Flow) {
		t.Fatalf("flow diverged:\nfirst:  %+v\nsecond: %+v", first.Flow, second.Flow)
	}
	if !reflect.DeepEqual(first.ResultsFlow, second.ResultsFlow) {
		t.Fatalf("resultsFlow diverged:\nfirst:  %+v\nsecond: %+v", first.ResultsFlow, second.ResultsFlow)
	}
}

func TestDocumentFromExportRestoresType(t *testing.T) {
	export := Sanitize(fixtureDocument())
	doc := DocumentFromExport(export)
	if len(doc.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(doc.Questions))
	}
	if doc.Questions[0].Type != types.QuestionTypeSingleChoice {
		t.Fatalf("restored type: got %q", doc.Questions[0].Type)
	}
	if doc.Questions[0].ID != 10 || doc.Questions[1].ID != 20 {
		t.Fatalf("restored ids: %d, %d", doc.Questions[0].ID, doc.Questions[1].ID)
	}
}
