package quizgraph

import "testing"

func TestParseQuestionNode(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		wantID int
		wantOK bool
	}{
		{name: "plain", in: "question-10", wantID: 10, wantOK: true},
		{name: "with_suffix", in: "question-10-source-right", wantID: 10, wantOK: true},
		{name: "zero", in: "question-0", wantID: 0, wantOK: true},
		{name: "no_prefix", in: "10", wantOK: false},
		{name: "wrong_kind", in: "result-10-out", wantOK: false},
		{name: "not_leading", in: "x-question-10", wantOK: false},
		{name: "missing_id", in: "question-", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := ParseQuestionNode(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseQuestionNode(%q) ok=%v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && ref.ID != tc.wantID {
				t.Fatalf("ParseQuestionNode(%q) id=%d, want %d", tc.in, ref.ID, tc.wantID)
			}
		})
	}
}

func TestParseOptionHandle(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantIdx int
		wantOK  bool
	}{
		{name: "editor_handle", in: "question-10-option-0", wantIdx: 0, wantOK: true},
		{name: "bare_option", in: "option-3", wantIdx: 3, wantOK: true},
		{name: "first_match_wins", in: "option-1-option-2", wantIdx: 1, wantOK: true},
		{name: "no_option_substring", in: "question-10", wantOK: false},
		{name: "missing_index", in: "option-", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := ParseOptionHandle(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseOptionHandle(%q) ok=%v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && idx != tc.wantIdx {
				t.Fatalf("ParseOptionHandle(%q) idx=%d, want %d", tc.in, idx, tc.wantIdx)
			}
		})
	}
}

func TestParseResultNode(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		wantID int
		wantOK bool
	}{
		{name: "with_suffix", in: "result-5-out", wantID: 5, wantOK: true},
		{name: "long_suffix", in: "result-12-handle-bottom", wantID: 12, wantOK: true},
		{name: "no_suffix_separator", in: "result-5", wantOK: false},
		{name: "wrong_kind", in: "question-5-out", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := ParseResultNode(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseResultNode(%q) ok=%v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && ref.ID != tc.wantID {
				t.Fatalf("ParseResultNode(%q) id=%d, want %d", tc.in, ref.ID, tc.wantID)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	if ref, ok := ParseQuestionNode(FormatQuestionNode(42)); !ok || ref.ID != 42 {
		t.Fatalf("question node round trip failed: %v %v", ref, ok)
	}
	if idx, ok := ParseOptionHandle(FormatOptionHandle(42, 3)); !ok || idx != 3 {
		t.Fatalf("option handle round trip failed: %v %v", idx, ok)
	}
	if ref, ok := ParseResultNode(FormatResultNode(7, "out")); !ok || ref.ID != 7 {
		t.Fatalf("result node round trip failed: %v %v", ref, ok)
	}
}
