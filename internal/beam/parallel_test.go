package beam

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	const n = 10000
	var sum int64

	ParallelFor(n, 64, func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		atomic.AddInt64(&sum, local)
	})

	want := int64(n) * (n - 1) / 2
	if sum != want {
		t.Errorf("sum = %d, want %d", sum, want)
	}
}

func TestParallelForSmallRange(t *testing.T) {
	seen := make([]bool, 10)
	ParallelFor(10, 256, func(start, end int) {
		for i := start; i < end; i++ {
			seen[i] = true
		}
	})
	for i, s := range seen {
		if !s {
			t.Errorf("index %d never visited", i)
		}
	}
}
