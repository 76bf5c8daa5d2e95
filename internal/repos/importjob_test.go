package repos

import (
	"strings"
	"testing"
	"time"
)

func TestRunnableJobConditionCapsEveryReclaimBranch(t *testing.T) {
	// A job that keeps hanging mid-run must stop being reclaimed once it
	// burns through its attempts, same as one that keeps failing.
	if got := strings.Count(runnableJobCondition, "attempts < ?"); got != 2 {
		t.Fatalf("attempts guards in condition = %d, want 2", got)
	}

	placeholders := strings.Count(runnableJobCondition, "?")
	args := runnableJobArgs(3, time.Now().Add(-time.Minute), time.Now().Add(-5*time.Minute))
	if placeholders != len(args) {
		t.Fatalf("placeholders = %d, args = %d", placeholders, len(args))
	}

	capped := 0
	for _, arg := range args {
		if n, ok := arg.(int); ok && n == 3 {
			capped++
		}
	}
	if capped != 2 {
		t.Fatalf("max attempts bound %d times, want 2", capped)
	}
}
