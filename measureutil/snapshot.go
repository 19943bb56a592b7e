// Package measureutil turns the global measure counters into report rows.
package measureutil

import (
	"sort"

	"falcon-aggregate/measure"
)

// Entry is one counter in a report.
type Entry struct {
	Key   string `json:"key"`
	Value uint64 `json:"value"`
	Human string `json:"human"`
}

// SnapshotAndReset drains measure.Global into entries sorted by key.
func SnapshotAndReset() []Entry {
	snap := measure.Global.SnapshotAndReset()
	out := make([]Entry, 0, len(snap))
	for k, v := range snap {
		out = append(out, Entry{Key: k, Value: v, Human: measure.Human(int64(v))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
