package types

import "encoding/json"

// QuizDocument is the authoring-time aggregate the quiz builder edits. It is
// passed into the graph pipeline as a value snapshot; nothing downstream
// mutates it.
type QuizDocument struct {
	QuizDetails  QuizDetails `json:"quizDetails"`
	Questions    []Question  `json:"questions,omitempty"`
	Results      []Result    `json:"results,omitempty"`
	Logic        EdgeSet     `json:"logic"`
	LogicResults EdgeSet     `json:"logicResults"`
	// CurrentStep is editor-only state carried by drafts. It never appears in
	// the export document.
	CurrentStep int `json:"currentStep,omitempty"`
}

type QuizDetails struct {
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	RequireLogin        bool   `json:"requireLogin"`
	PreQuiz             bool   `json:"preQuiz"`
	AddThankYouPage     bool   `json:"addThankYouPage"`
	ThankYouTitle       string `json:"thankYouTitle,omitempty"`
	ThankYouDescription string `json:"thankYouDescription,omitempty"`
	ThankYouImage       string `json:"thankYouImage,omitempty"`
	ThankYouImageType   string `json:"thankYouImageType,omitempty"`
}

// Question ids are assigned once at creation and survive reordering; display
// numbers ("Q{n}") always come from the slice position instead.
type Question struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StepType    string   `json:"stepType,omitempty"`
	Type        string   `json:"type,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Option is either a bare string or a record in the stored JSON. Options have
// no id of their own; their slice index is their identity at the graph
// boundary.
type Option struct {
	Text      string `json:"text"`
	Image     string `json:"image,omitempty"`
	ImageType string `json:"imageType,omitempty"`
	HasImage  bool   `json:"hasImage,omitempty"`

	bare bool
}

// BareOption builds an option that marshals back to a plain JSON string.
func BareOption(text string) Option {
	return Option{Text: text, bare: true}
}

// Bare reports whether the option was authored as a plain string.
func (o Option) Bare() bool { return o.bare }

func (o *Option) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Option{Text: s, bare: true}
		return nil
	}
	type option Option
	var rec option
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*o = Option(rec)
	return nil
}

func (o Option) MarshalJSON() ([]byte, error) {
	if o.bare {
		return json.Marshal(o.Text)
	}
	type option Option
	return json.Marshal(option(o))
}

type Result struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	IsDefault     bool            `json:"isDefault"`
	ContinuePopup bool            `json:"continuePopup"`
	Addons        bool            `json:"addons"`
	Products      []ResultProduct `json:"products,omitempty"`
}

type ResultProduct struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Price   float64  `json:"price"`
	Images  []string `json:"images,omitempty"`
	Primary bool     `json:"primary,omitempty"`
}

// Edge endpoints are the editor's stringly node ids ("question-3",
// "result-7-out") plus an optional option handle. Decoding lives in the
// quizgraph package.
type Edge struct {
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	Target       string `json:"target"`
}

type EdgeSet struct {
	Edges []Edge `json:"edges"`
}

// Answer kinds that carry an options slice.
const (
	QuestionTypeSingleChoice   = "single-choice"
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeDropdownList   = "dropdown-list"
)

// HasOptions reports whether the answer kind carries an options slice.
func HasOptions(questionType string) bool {
	switch questionType {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeDropdownList:
		return true
	}
	return false
}

// Clone returns a deep copy. The graph pipeline copies before transforming so
// the editor's snapshot is never touched.
func (d QuizDocument) Clone() QuizDocument {
	out := d
	if d.Questions != nil {
		out.Questions = make([]Question, len(d.Questions))
		for i, q := range d.Questions {
			cq := q
			if q.Options != nil {
				cq.Options = make([]Option, len(q.Options))
				copy(cq.Options, q.Options)
			}
			out.Questions[i] = cq
		}
	}
	if d.Results != nil {
		out.Results = make([]Result, len(d.Results))
		for i, r := range d.Results {
			cr := r
			if r.Products != nil {
				cr.Products = make([]ResultProduct, len(r.Products))
				for j, p := range r.Products {
					cp := p
					if p.Images != nil {
						cp.Images = append([]string(nil), p.Images...)
					}
					cr.Products[j] = cp
				}
			}
			out.Results[i] = cr
		}
	}
	out.Logic = d.Logic.clone()
	out.LogicResults = d.LogicResults.clone()
	return out
}

func (s EdgeSet) clone() EdgeSet {
	if s.Edges == nil {
		return s
	}
	out := EdgeSet{Edges: make([]Edge, len(s.Edges))}
	copy(out.Edges, s.Edges)
	return out
}
