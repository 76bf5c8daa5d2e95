package quizgraph

import (
	"fmt"

	"github.com/merchly/console-backend/internal/types"
)

// ResolvedOption is the display form of the option an edge starts from.
// Index is the 1-based display index.
type ResolvedOption struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// FlowSource identifies where an edge starts. QuestionNumber is the 1-based
// position in the document's question sequence, which is what every
// human-readable output uses.
type FlowSource struct {
	QuestionNumber int             `json:"questionNumber"`
	QuestionID     int             `json:"questionId"`
	QuestionTitle  string          `json:"questionTitle"`
	Option         *ResolvedOption `json:"option,omitempty"`
}

type FlowQuestionTarget struct {
	QuestionNumber int    `json:"questionNumber"`
	QuestionID     int    `json:"questionId"`
	QuestionTitle  string `json:"questionTitle"`
}

type FlowResultTarget struct {
	ResultID    int    `json:"resultId"`
	ResultTitle string `json:"resultTitle"`
	IsDefault   bool   `json:"isDefault"`
}

// QuestionLink is a fully resolved question→question edge.
type QuestionLink struct {
	From FlowSource
	To   FlowQuestionTarget
}

// ResultLink is a fully resolved question/option→result edge.
type ResultLink struct {
	From FlowSource
	To   FlowResultTarget
}

type documentIndex struct {
	doc       types.QuizDocument
	questions map[int]int // Question.ID -> position in doc.Questions
	results   map[int]int // Result.ID -> position in doc.Results
}

func indexDocument(doc types.QuizDocument) documentIndex {
	idx := documentIndex{
		doc:       doc,
		questions: make(map[int]int, len(doc.Questions)),
		results:   make(map[int]int, len(doc.Results)),
	}
	for i, q := range doc.Questions {
		idx.questions[q.ID] = i
	}
	for i, r := range doc.Results {
		idx.results[r.ID] = i
	}
	return idx
}

// resolveSource decodes an edge's source and handle against the document.
// An out-of-range option index keeps the edge alive as a plain question-level
// connection; only a missing question drops it.
func (idx documentIndex) resolveSource(edge types.Edge) (FlowSource, bool) {
	ref, ok := ParseQuestionNode(edge.Source)
	if !ok {
		return FlowSource{}, false
	}
	pos, ok := idx.questions[ref.ID]
	if !ok {
		return FlowSource{}, false
	}
	q := idx.doc.Questions[pos]
	src := FlowSource{
		QuestionNumber: pos + 1,
		QuestionID:     q.ID,
		QuestionTitle:  questionTitle(q.Title, pos+1),
	}
	if optIdx, ok := ParseOptionHandle(edge.SourceHandle); ok && optIdx >= 0 && optIdx < len(q.Options) {
		display := optIdx + 1
		text := q.Options[optIdx].Text
		if text == "" {
			text = fmt.Sprintf("Option %d", display)
		}
		src.Option = &ResolvedOption{Index: display, Text: text}
	}
	return src, true
}

func (idx documentIndex) resolveQuestionTarget(edge types.Edge) (FlowQuestionTarget, bool) {
	ref, ok := ParseQuestionNode(edge.Target)
	if !ok {
		return FlowQuestionTarget{}, false
	}
	pos, ok := idx.questions[ref.ID]
	if !ok {
		return FlowQuestionTarget{}, false
	}
	q := idx.doc.Questions[pos]
	return FlowQuestionTarget{
		QuestionNumber: pos + 1,
		QuestionID:     q.ID,
		QuestionTitle:  questionTitle(q.Title, pos+1),
	}, true
}

func (idx documentIndex) resolveResultTarget(edge types.Edge) (FlowResultTarget, bool) {
	ref, ok := ParseResultNode(edge.Target)
	if !ok {
		return FlowResultTarget{}, false
	}
	pos, ok := idx.results[ref.ID]
	if !ok {
		return FlowResultTarget{}, false
	}
	r := idx.doc.Results[pos]
	title := r.Title
	if title == "" {
		title = "Untitled Result"
	}
	return FlowResultTarget{
		ResultID:    r.ID,
		ResultTitle: title,
		IsDefault:   r.IsDefault,
	}, true
}

func questionTitle(title string, number int) string {
	if title == "" {
		return fmt.Sprintf("Question %d", number)
	}
	return title
}

// ResolveQuestionLinks resolves the logic edge set. Edges whose source or
// target cannot be matched contribute nothing; order follows the edge slice.
func ResolveQuestionLinks(doc types.QuizDocument) []QuestionLink {
	idx := indexDocument(doc)
	var links []QuestionLink
	for _, edge := range doc.Logic.Edges {
		src, ok := idx.resolveSource(edge)
		if !ok {
			continue
		}
		dst, ok := idx.resolveQuestionTarget(edge)
		if !ok {
			continue
		}
		links = append(links, QuestionLink{From: src, To: dst})
	}
	return links
}

// ResolveResultLinks resolves the logicResults edge set.
func ResolveResultLinks(doc types.QuizDocument) []ResultLink {
	idx := indexDocument(doc)
	var links []ResultLink
	for _, edge := range doc.LogicResults.Edges {
		src, ok := idx.resolveSource(edge)
		if !ok {
			continue
		}
		dst, ok := idx.resolveResultTarget(edge)
		if !ok {
			continue
		}
		links = append(links, ResultLink{From: src, To: dst})
	}
	return links
}
