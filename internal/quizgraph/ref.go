// Package quizgraph resolves the quiz builder's logic graph: it decodes the
// editor's stringly node ids, matches edges to question and result records,
// renders human-readable flow lines and produces the sanitized export
// document. Everything here is a pure transformation over a document
// snapshot; unresolvable input is dropped, never an error.
package quizgraph

import (
	"fmt"
	"regexp"
	"strconv"
)

// Wire formats shared with the visual editor. Stored quizzes already use
// these shapes, so they cannot change.
var (
	questionNodePattern = regexp.MustCompile(`^question-(\d+)`)
	optionHandlePattern = regexp.MustCompile(`option-(\d+)`)
	resultNodePattern   = regexp.MustCompile(`^result-(\d+)-`)
)

// QuestionRef is a decoded question node id.
type QuestionRef struct {
	ID int
}

// ResultRef is a decoded result node id.
type ResultRef struct {
	ID int
}

// ParseQuestionNode decodes "question-{id}". Anything after the leading
// integer is ignored. A string that does not match yields ok=false.
func ParseQuestionNode(s string) (QuestionRef, bool) {
	m := questionNodePattern.FindStringSubmatch(s)
	if m == nil {
		return QuestionRef{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return QuestionRef{}, false
	}
	return QuestionRef{ID: id}, true
}

// ParseOptionHandle extracts the zero-based option index from a source
// handle. The first integer following "option-" wins; a handle without the
// substring means the edge starts at the question itself.
func ParseOptionHandle(s string) (int, bool) {
	m := optionHandlePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}

// ParseResultNode decodes "result-{id}-{suffix}". The suffix is opaque.
func ParseResultNode(s string) (ResultRef, bool) {
	m := resultNodePattern.FindStringSubmatch(s)
	if m == nil {
		return ResultRef{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return ResultRef{}, false
	}
	return ResultRef{ID: id}, true
}

func FormatQuestionNode(questionID int) string {
	return fmt.Sprintf("question-%d", questionID)
}

func FormatOptionHandle(questionID, optionIndex int) string {
	return fmt.Sprintf("question-%d-option-%d", questionID, optionIndex)
}

func FormatResultNode(resultID int, suffix string) string {
	return fmt.Sprintf("result-%d-%s", resultID, suffix)
}
