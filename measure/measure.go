// Package measure keeps process-wide size and norm counters. Recording is
// off unless MEASURE_SIZES=1.
package measure

import (
	"fmt"
	"math/bits"
	"os"
	"sort"
	"sync"
)

var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("MEASURE_SIZES") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// BytesField is ceil(bitlen(q)/8).
func BytesField(q uint64) int {
	return (bits.Len64(q) + 7) / 8
}

// BytesRing is the packed size of one ring element with n coefficients mod q.
func BytesRing(n int, q uint64) int {
	return n * BytesField(q)
}

func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

type Counter struct {
	mu sync.Mutex
	M  map[string]int64
}

func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.mu.Unlock()
}

// Max keeps the largest value seen under key.
func (c *Counter) Max(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	if n > c.M[key] {
		c.M[key] = n
	}
	c.mu.Unlock()
}

// SnapshotAndReset copies the counters and clears them.
func (c *Counter) SnapshotAndReset() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.M))
	for k, v := range c.M {
		if v > 0 {
			out[k] = uint64(v)
		}
	}
	c.M = make(map[string]int64)
	return out
}

func (c *Counter) Dump() {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.M))
	for k := range c.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("[measure] Size report:")
	for _, k := range keys {
		fmt.Printf("[measure] %s = %s\n", k, Human(c.M[k]))
	}
}

func Section(name string, f func()) {
	if !Enabled {
		f()
		return
	}
	fmt.Printf("[measure] Begin %s\n", name)
	f()
	fmt.Printf("[measure] End %s\n", name)
}
