package services

import (
	"testing"
	"time"
)

func TestExportFileName(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	cases := []struct {
		name     string
		quizName string
		want     string
	}{
		{"named quiz", "Summer Picks", "quiz-Summer Picks-1700000000000.json"},
		{"empty name falls back", "", "quiz-export-1700000000000.json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExportFileName(tc.quizName, at)
			if got != tc.want {
				t.Fatalf("ExportFileName(%q) = %q, want %q", tc.quizName, got, tc.want)
			}
		})
	}
}
