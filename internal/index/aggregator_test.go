package index

import (
	"sync"
	"testing"
)

// TestAggregatorMerge verifies the aggregation invariants: documents equals
// the number of Merge calls, tokens equals the sum of sequence lengths, and
// unique terms equals the cardinality of the resulting map.
func TestAggregatorMerge(t *testing.T) {
	t.Parallel()

	a := NewAggregator()
	a.Merge([]string{"go", "web", "crawler", "go"})
	a.Merge([]string{"web", "index"})
	a.Merge(nil) // page with no extractable text

	terms, stats := a.Snapshot()

	if stats.Documents != 3 {
		t.Errorf("expected 3 documents, got %d", stats.Documents)
	}
	if stats.Tokens != 6 {
		t.Errorf("expected 6 tokens, got %d", stats.Tokens)
	}
	if stats.UniqueTerms != 4 {
		t.Errorf("expected 4 unique terms, got %d", stats.UniqueTerms)
	}

	want := map[string]int{"go": 2, "web": 2, "crawler": 1, "index": 1}
	for term, count := range want {
		if terms[term] != count {
			t.Errorf("term %q: expected count %d, got %d", term, count, terms[term])
		}
	}
}

// TestAggregatorSnapshotIsCopy verifies the snapshot is detached from the
// live index.
func TestAggregatorSnapshotIsCopy(t *testing.T) {
	t.Parallel()

	a := NewAggregator()
	a.Merge([]string{"alpha"})

	terms, _ := a.Snapshot()
	terms["alpha"] = 99
	terms["injected"] = 1

	fresh, stats := a.Snapshot()
	if fresh["alpha"] != 1 {
		t.Errorf("live index mutated through snapshot: %d", fresh["alpha"])
	}
	if _, ok := fresh["injected"]; ok {
		t.Error("snapshot mutation leaked into live index")
	}
	if stats.UniqueTerms != 1 {
		t.Errorf("expected 1 unique term, got %d", stats.UniqueTerms)
	}
}

// TestAggregatorConcurrentMerge verifies the totals are exact regardless of
// merge interleaving.
func TestAggregatorConcurrentMerge(t *testing.T) {
	t.Parallel()

	const (
		goroutines = 20
		merges     = 50
	)

	a := NewAggregator()
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < merges; i++ {
				a.Merge([]string{"shared", "token"})
			}
		}()
	}
	wg.Wait()

	terms, stats := a.Snapshot()

	wantDocs := goroutines * merges
	if stats.Documents != wantDocs {
		t.Errorf("expected %d documents, got %d", wantDocs, stats.Documents)
	}
	if stats.Tokens != wantDocs*2 {
		t.Errorf("expected %d tokens, got %d", wantDocs*2, stats.Tokens)
	}
	if terms["shared"] != wantDocs || terms["token"] != wantDocs {
		t.Errorf("unexpected counts: shared=%d token=%d", terms["shared"], terms["token"])
	}
	if stats.UniqueTerms != 2 {
		t.Errorf("expected 2 unique terms, got %d", stats.UniqueTerms)
	}
}

// TestAggregatorTimestamps verifies Start/Finish bracket the run.
func TestAggregatorTimestamps(t *testing.T) {
	t.Parallel()

	a := NewAggregator()
	a.Start()
	a.Merge([]string{"x"})
	a.Finish()

	_, stats := a.Snapshot()
	if stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		t.Fatal("expected non-zero start and end times")
	}
	if stats.EndTime.Before(stats.StartTime) {
		t.Errorf("end time %s precedes start time %s", stats.EndTime, stats.StartTime)
	}
}
