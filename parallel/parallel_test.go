package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkers(t *testing.T) {
	assert.Equal(t, 4, Workers(4, 100))
	assert.Equal(t, 3, Workers(4, 3))
	assert.Equal(t, 1, Workers(4, 0))
	assert.Equal(t, min(runtime.GOMAXPROCS(0), 1000), Workers(0, 1000))
	assert.Equal(t, min(runtime.GOMAXPROCS(0), 1000), Workers(-3, 1000))
}

func TestFor(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 3, 4, 7, 16, 200} {
		for _, n := range []int{1, 2, 5, 99, 100, 101, 1000} {
			results := make([]int, n)

			For(workers, n, func(start, end int) {
				for i := start; i < end; i++ {
					results[i] = i * 2
				}
			})

			for i := 0; i < n; i++ {
				require.Equal(t, i*2, results[i], "workers=%d n=%d index %d", workers, n, i)
			}
		}
	}
}

func TestForDisjointChunks(t *testing.T) {
	n := 1003
	var visits [1003]atomic.Int32

	var mu sync.Mutex
	var chunks [][2]int

	For(8, n, func(start, end int) {
		mu.Lock()
		chunks = append(chunks, [2]int{start, end})
		mu.Unlock()
		for i := start; i < end; i++ {
			visits[i].Add(1)
		}
	})

	assert.Len(t, chunks, 8)
	for i := range visits {
		assert.Equal(t, int32(1), visits[i].Load(), "index %d", i)
	}
}

func TestForSingleWorkerRunsInline(t *testing.T) {
	calls := 0
	For(1, 50, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 50, end)
	})
	assert.Equal(t, 1, calls)
}

func TestForEmpty(t *testing.T) {
	called := false
	For(4, 0, func(start, end int) {
		called = true
	})
	assert.False(t, called)
}
