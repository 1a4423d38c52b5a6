package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/darkzone/pkg/sequence"
)

func TestConcurrent_RespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	var done atomic.Int32
	err := Concurrent(context.Background(), sequence.From(make([]int, 20)), 3, func(context.Context, int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		done.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(20), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestConcurrent_FirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Concurrent(context.Background(), sequence.From([]int{1, 2, 3}), 1, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelMap_PreservesOrder(t *testing.T) {
	out, err := ParallelMap(context.Background(), sequence.From([]int{1, 2, 3, 4, 5}), 2, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, out)

	_, err = ParallelMap(context.Background(), sequence.From([]int{1, 2}), 0, func(_ context.Context, v int) (int, error) {
		return 0, errors.New("nope")
	})
	assert.Error(t, err)
}

func TestBatch_Chunks(t *testing.T) {
	var total, chunks atomic.Int32
	err := Batch(context.Background(), sequence.From([]int{1, 2, 3, 4, 5, 6, 7}), 3, func(_ context.Context, c []int) error {
		chunks.Add(1)
		for _, v := range c {
			total.Add(int32(v))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), chunks.Load())
	assert.Equal(t, int32(28), total.Load())
}
