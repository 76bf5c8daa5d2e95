package quizgraph

import (
	"github.com/merchly/console-backend/internal/types"
)

// ExportDocument is the stable external schema. It is both the downloadable
// artifact and the raw-JSON preview payload; the two always come from the
// same Sanitize call so they cannot diverge.
type ExportDocument struct {
	QuizDetails  types.QuizDetails `json:"quizDetails"`
	Steps        []Step            `json:"steps"`
	Results      []types.Result    `json:"results"`
	Logic        types.EdgeSet     `json:"logic"`
	LogicResults types.EdgeSet     `json:"logicResults"`
	Flow         []FlowEntry       `json:"flow,omitempty"`
	ResultsFlow  []ResultFlowEntry `json:"resultsFlow,omitempty"`
}

// Step is the export form of a question. QuestionType is a pointer so that
// question steps keep the key even when the answer kind is empty, while
// non-question steps omit it entirely.
type Step struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	StepType     string         `json:"stepType"`
	QuestionType *string        `json:"questionType,omitempty"`
	Options      []types.Option `json:"options,omitempty"`
}

// Sanitize turns the authoring document into the export schema. The input is
// deep-copied first and never mutated. Transformation order:
//  1. drop the editor-only currentStep
//  2. questions become steps: required is dropped, stepType is derived for
//     legacy records that only carry type
//  3. question steps get questionType; options survive only for
//     option-bearing answer kinds, other step kinds lose both fields
//  4. flow and resultsFlow are generated from the copied document and
//     omitted when empty
func Sanitize(doc types.QuizDocument) ExportDocument {
	snap := doc.Clone()
	snap.CurrentStep = 0

	steps := make([]Step, 0, len(snap.Questions))
	for _, q := range snap.Questions {
		steps = append(steps, sanitizeStep(q))
	}

	out := ExportDocument{
		QuizDetails:  snap.QuizDetails,
		Steps:        steps,
		Results:      snap.Results,
		Logic:        snap.Logic,
		LogicResults: snap.LogicResults,
	}
	if flow := QuestionFlow(snap); len(flow) > 0 {
		out.Flow = flow
	}
	if resultsFlow := ResultFlow(snap); len(resultsFlow) > 0 {
		out.ResultsFlow = resultsFlow
	}
	return out
}

func sanitizeStep(q types.Question) Step {
	stepType := q.StepType
	if stepType == "" {
		stepType = "question"
	}
	step := Step{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		StepType:    stepType,
	}
	if stepType == "question" {
		questionType := q.Type
		step.QuestionType = &questionType
		// Authoring data may carry stale options on a type that lost them.
		if types.HasOptions(q.Type) {
			step.Options = q.Options
		}
	}
	return step
}

// DocumentFromExport rebuilds an authoring document from a previously
// exported one, so exports can be re-imported into the builder. Flow
// annotations are discarded; they are regenerated on the next export.
func DocumentFromExport(export ExportDocument) types.QuizDocument {
	questions := make([]types.Question, 0, len(export.Steps))
	for _, step := range export.Steps {
		q := types.Question{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			StepType:    step.StepType,
			Options:     step.Options,
		}
		if step.QuestionType != nil {
			q.Type = *step.QuestionType
		}
		questions = append(questions, q)
	}
	doc := types.QuizDocument{
		QuizDetails:  export.QuizDetails,
		Questions:    questions,
		Results:      export.Results,
		Logic:        export.Logic,
		LogicResults: export.LogicResults,
	}
	return doc.Clone()
}
