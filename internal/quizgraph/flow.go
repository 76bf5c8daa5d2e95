package quizgraph

import (
	"fmt"

	"github.com/merchly/console-backend/internal/types"
)

// flowArrow is U+2192, fixed by the export schema.
const flowArrow = " → "

// FlowEntry pairs a resolved question→question link with its rendered line.
// Consumers can use either the string or the structured endpoints.
type FlowEntry struct {
	From FlowSource         `json:"from"`
	To   FlowQuestionTarget `json:"to"`
	Flow string             `json:"flow"`
}

// ResultFlowEntry pairs a resolved question/option→result link with its
// rendered line.
type ResultFlowEntry struct {
	From FlowSource       `json:"from"`
	To   FlowResultTarget `json:"to"`
	Flow string           `json:"flow"`
}

// QuestionFlow renders the logic edge set, e.g. "Q1, O1 (Red) → Q2".
func QuestionFlow(doc types.QuizDocument) []FlowEntry {
	links := ResolveQuestionLinks(doc)
	var entries []FlowEntry
	for _, link := range links {
		entries = append(entries, FlowEntry{
			From: link.From,
			To:   link.To,
			Flow: renderSource(link.From) + flowArrow + fmt.Sprintf("Q%d", link.To.QuestionNumber),
		})
	}
	return entries
}

// ResultFlow renders the logicResults edge set, e.g. "Q1 → Winner".
func ResultFlow(doc types.QuizDocument) []ResultFlowEntry {
	links := ResolveResultLinks(doc)
	var entries []ResultFlowEntry
	for _, link := range links {
		entries = append(entries, ResultFlowEntry{
			From: link.From,
			To:   link.To,
			Flow: renderSource(link.From) + flowArrow + link.To.ResultTitle,
		})
	}
	return entries
}

func renderSource(src FlowSource) string {
	if src.Option != nil {
		return fmt.Sprintf("Q%d, O%d (%s)", src.QuestionNumber, src.Option.Index, src.Option.Text)
	}
	return fmt.Sprintf("Q%d", src.QuestionNumber)
}
