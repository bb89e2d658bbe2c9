package stream

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Map tests ---

func TestMap(t *testing.T) {
	s := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	})
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "6"}, got)
}

func TestMap_ErrorStopsStream(t *testing.T) {
	boom := errors.New("map failed")
	s := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	got, err := Collect(context.Background(), s)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1}, got)
}

// --- Filter tests ---

func TestFilter(t *testing.T) {
	s := Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, got)
}

func TestFilter_NoneMatch(t *testing.T) {
	s := Filter(FromSlice([]int{1, 3}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- DistinctUntil tests ---

func TestDistinctUntil(t *testing.T) {
	s := DistinctUntil(FromSlice([]int{1, 1, 2, 2, 2, 3, 1}), func(a, b int) bool { return a == b })
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1}, got)
}

func TestDistinctUntil_AllSame(t *testing.T) {
	s := DistinctUntil(FromSlice([]int{7, 7, 7}), func(a, b int) bool { return a == b })
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got)
}

// --- Tap tests ---

func TestTap_PassesThrough(t *testing.T) {
	var seen []int
	s := Tap(FromSlice([]int{1, 2}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		return nil
	})
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestTap_ErrorStopsStream(t *testing.T) {
	boom := errors.New("tap failed")
	s := Tap(FromSlice([]int{1, 2}), func(_ context.Context, n int) error { return boom })
	_, err := Collect(context.Background(), s)
	require.ErrorIs(t, err, boom)
}

// --- Take tests ---

func TestTake(t *testing.T) {
	got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2, 3, 4}), 2))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTake_MoreThanAvailable(t *testing.T) {
	got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2}), 5))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTake_Zero(t *testing.T) {
	got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2}), 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- Debounce tests ---

func TestDebounce_EmitsLatestOnClose(t *testing.T) {
	// The source exhausts immediately, so the pending latest value flushes
	// without waiting for the quiet period.
	s := Debounce(FromSlice([]int{1, 2, 3}), time.Hour)
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got)
}

func TestDebounce_EmitsAfterQuietPeriod(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 1
	ch <- 2

	ctx := context.Background()
	iter := Debounce(FromChannel(ch), 30*time.Millisecond).Iter(ctx)
	defer iter.Close()

	// Both values arrive inside one quiet period; only the latest emits.
	val, ok, err := iter.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, val)

	close(ch)
	_, ok, err = iter.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDebounce_Empty(t *testing.T) {
	s := Debounce(FromSlice([]int{}), time.Millisecond)
	got, err := Collect(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- Throttle tests ---

func TestThrottle_DropsRapidValues(t *testing.T) {
	// With a very large interval only the first value passes.
	got, err := Collect(context.Background(), Throttle(FromSlice([]int{1, 2, 3, 4, 5}), time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestThrottle_AllPassWithZeroInterval(t *testing.T) {
	got, err := Collect(context.Background(), Throttle(FromSlice([]int{1, 2, 3}), 0))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestThrottle_Empty(t *testing.T) {
	got, err := Collect(context.Background(), Throttle(FromSlice([]int{}), time.Second))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- Composition ---

func TestOperatorChain(t *testing.T) {
	s := FromSlice([]int{1, 1, 2, 3, 4, 4, 5, 6})
	distinct := DistinctUntil(s, func(a, b int) bool { return a == b })
	evens := Filter(distinct, func(n int) bool { return n%2 == 0 })
	labels := Map(evens, func(_ context.Context, n int) (string, error) {
		return "n=" + strconv.Itoa(n), nil
	})

	got, err := Collect(context.Background(), Take(labels, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"n=2", "n=4"}, got)
}
