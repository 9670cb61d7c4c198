package worker

import (
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(4, 16, zerolog.Nop())
	pool.Start()

	var done atomic.Int32
	for i := 0; i < 16; i++ {
		pool.Submit(func() {
			done.Add(1)
		})
	}

	pool.Stop()
	assert.Equal(t, int32(16), done.Load())
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := NewPool(2, 4, zerolog.Nop())
	pool.Start()

	var done atomic.Int32
	pool.Submit(func() { panic("boom") })
	pool.Submit(func() { done.Add(1) })

	pool.Stop()
	assert.Equal(t, int32(1), done.Load())
}

func TestPoolClampsBadSizes(t *testing.T) {
	pool := NewPool(0, -1, zerolog.Nop())
	pool.Start()

	var done atomic.Int32
	pool.Submit(func() { done.Add(1) })

	pool.Stop()
	assert.Equal(t, int32(1), done.Load())
}
