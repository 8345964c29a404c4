package workerpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	t.Parallel()

	q := newQueue()
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		ok := q.push(message{job: func() { got = append(got, i) }})
		require.True(t, ok)
	}

	for i := 0; i < 10; i++ {
		m, ok := q.pop()
		require.True(t, ok)
		require.False(t, m.terminate)
		m.job()
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.Equal(t, 0, q.len())
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	t.Parallel()

	q := newQueue()
	popped := make(chan message, 1)
	go func() {
		m, ok := q.pop()
		if ok {
			popped <- m
		}
	}()

	select {
	case <-popped:
		t.Fatal("pop returned before anything was pushed")
	case <-time.After(50 * time.Millisecond):
	}

	q.push(message{terminate: true})

	select {
	case m := <-popped:
		assert.True(t, m.terminate)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake after push")
	}
}

func TestQueueCloseWakesBlockedReceivers(t *testing.T) {
	t.Parallel()

	q := newQueue()
	done := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, ok := q.pop()
			done <- ok
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.close()

	for i := 0; i < 3; i++ {
		select {
		case ok := <-done:
			assert.False(t, ok, "pop on a closed empty queue must report failure")
		case <-time.After(time.Second):
			t.Fatal("blocked receiver was not woken by close")
		}
	}
}

func TestQueuePushAfterCloseRefused(t *testing.T) {
	t.Parallel()

	q := newQueue()
	q.close()
	assert.False(t, q.push(message{job: func() {}}))
}

func TestQueueDrainsQueuedMessagesAfterClose(t *testing.T) {
	t.Parallel()

	q := newQueue()
	require.True(t, q.push(message{job: func() {}}))
	q.close()

	m, ok := q.pop()
	assert.True(t, ok, "messages queued before close stay poppable")
	assert.NotNil(t, m.job)

	_, ok = q.pop()
	assert.False(t, ok)
}
