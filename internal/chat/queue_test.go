package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := &Queue{}
	q.Enqueue("chat-1")
	q.Enqueue("chat-2")
	q.Enqueue("chat-1")
	assert.Equal(t, 3, q.Len())

	head, ok := q.BeginDrain()
	assert.True(t, ok)
	assert.Equal(t, "chat-1", head)
	q.EndDrain()

	head, ok = q.BeginDrain()
	assert.True(t, ok)
	assert.Equal(t, "chat-2", head)
	q.EndDrain()

	head, ok = q.BeginDrain()
	assert.True(t, ok)
	assert.Equal(t, "chat-1", head)
	q.EndDrain()

	_, ok = q.BeginDrain()
	assert.False(t, ok)
}

func TestQueueSingleDrainAtATime(t *testing.T) {
	q := &Queue{}
	q.Enqueue("chat-a")
	q.Enqueue("chat-b")

	_, ok := q.BeginDrain()
	assert.True(t, ok)

	// A second drain cannot start until the first completes.
	_, ok = q.BeginDrain()
	assert.False(t, ok)

	q.EndDrain()
	head, ok := q.BeginDrain()
	assert.True(t, ok)
	assert.Equal(t, "chat-b", head)
}

func TestQueueCanDrain(t *testing.T) {
	q := &Queue{}
	assert.False(t, q.CanDrain(false, true), "empty queue")

	q.Enqueue("chat-a")
	assert.True(t, q.CanDrain(false, true))
	assert.False(t, q.CanDrain(true, true), "stream in flight")
	assert.False(t, q.CanDrain(false, false), "offline")

	q.BeginDrain()
	q.Enqueue("chat-b")
	assert.False(t, q.CanDrain(false, true), "drain in progress")
	q.EndDrain()
	assert.True(t, q.CanDrain(false, true))
}
