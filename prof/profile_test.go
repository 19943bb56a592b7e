package prof

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	SnapshotAndReset()
	Track(time.Now().Add(-2*time.Millisecond), "b")
	Track(time.Now().Add(-time.Millisecond), "a")
	Track(time.Now().Add(-3*time.Millisecond), "a")
	entries := SnapshotAndReset()
	if len(entries) != 3 {
		t.Fatalf("entries=%d want 3", len(entries))
	}
	stats := Summarize(entries)
	if len(stats) != 2 || stats[0].Label != "a" || stats[0].Count != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats[0].Max < 3*time.Millisecond {
		t.Fatalf("max=%v want >= 3ms", stats[0].Max)
	}
	if stats[0].Mean() > stats[0].Max {
		t.Fatalf("mean %v above max %v", stats[0].Mean(), stats[0].Max)
	}
	if len(SnapshotAndReset()) != 0 {
		t.Fatalf("record not cleared")
	}
}
