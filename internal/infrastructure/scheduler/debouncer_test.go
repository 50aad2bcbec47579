package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesCalls(t *testing.T) {
	d := NewDebouncer(context.Background())
	t.Cleanup(d.Stop)

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Debounce("resize", 20*time.Millisecond, func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending("resize"))

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(context.Background())
	t.Cleanup(d.Stop)

	var a, b atomic.Int32
	d.Debounce("a", 10*time.Millisecond, func() { a.Add(1) })
	d.Debounce("b", 10*time.Millisecond, func() { b.Add(1) })

	require.Eventually(t, func() bool { return a.Load() == 1 && b.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(context.Background())
	t.Cleanup(d.Stop)

	var calls atomic.Int32
	d.Debounce("save", 10*time.Millisecond, func() { calls.Add(1) })
	assert.True(t, d.Pending("save"))
	d.Cancel("save")
	assert.False(t, d.Pending("save"))

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(context.Background())

	var calls atomic.Int32
	d.Debounce("save", 10*time.Millisecond, func() { calls.Add(1) })
	d.Stop()
	d.Debounce("save", time.Millisecond, func() { calls.Add(1) })

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending("save"))
}
