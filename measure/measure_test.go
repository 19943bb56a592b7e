package measure

import "testing"

func TestBytesField(t *testing.T) {
	if got := BytesField(17); got != 1 {
		t.Fatalf("BytesField(17)=%d want 1", got)
	}
	if got := BytesField(12289); got != 2 {
		t.Fatalf("BytesField(12289)=%d want 2", got)
	}
	if got := BytesRing(512, 12289); got != 1024 {
		t.Fatalf("BytesRing(512,12289)=%d want 1024", got)
	}
}

func TestCounterSnapshot(t *testing.T) {
	prev := Enabled
	Enabled = true
	defer func() { Enabled = prev }()
	c := Counter{M: make(map[string]int64)}
	c.Add("a", 3)
	c.Add("a", 4)
	c.Max("b", 10)
	c.Max("b", 2)
	snap := c.SnapshotAndReset()
	if snap["a"] != 7 || snap["b"] != 10 {
		t.Fatalf("snapshot=%v", snap)
	}
	if len(c.SnapshotAndReset()) != 0 {
		t.Fatalf("counter not reset")
	}
}

func TestCounterDisabled(t *testing.T) {
	prev := Enabled
	Enabled = false
	defer func() { Enabled = prev }()
	c := Counter{M: make(map[string]int64)}
	c.Add("a", 1)
	if len(c.M) != 0 {
		t.Fatalf("disabled counter recorded %v", c.M)
	}
}

func TestHuman(t *testing.T) {
	if got := Human(512); got != "512 B" {
		t.Fatalf("Human(512)=%q", got)
	}
	if got := Human(2048); got != "2.0 KiB" {
		t.Fatalf("Human(2048)=%q", got)
	}
}
