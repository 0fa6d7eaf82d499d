package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParallelMapKeepsOrder(t *testing.T) {
	in := make([]int, 100)
	for i := range in {
		in[i] = i
	}

	var active, peak int64
	out, err := ParallelMap(context.Background(), in, 4, func(_ context.Context, v int) (int, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt64(&active, -1)
		return v * v, nil
	})
	require.NoError(t, err)
	for i, v := range out {
		require.Equal(t, i*i, v)
	}
	require.LessOrEqual(t, atomic.LoadInt64(&peak), int64(4))
}

func TestParallelMapError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ParallelMap(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	require.ErrorIs(t, err, boom)
}

func TestParallelMapCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	_, err := ParallelMap(ctx, []int{1, 2, 3}, 2, func(_ context.Context, v int) (int, error) {
		atomic.AddInt64(&calls, 1)
		return v, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, atomic.LoadInt64(&calls))
}
