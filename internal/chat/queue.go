package chat

// Queue buffers user submissions made while a stream is active or the
// endpoint is unreachable. Each entry records the chat it was submitted
// under, so a drain targets that chat even if the user switched to another
// one in the meantime. Entries drain strictly one at a time, in FIFO
// order, and only from the UI event loop, so no locking is needed.
type Queue struct {
	chatIDs  []string
	draining bool
}

// Enqueue appends a pending submission for the given chat to the tail.
func (q *Queue) Enqueue(chatID string) {
	q.chatIDs = append(q.chatIDs, chatID)
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	return len(q.chatIDs)
}

// CanDrain reports whether the head may be processed: queue non-empty, no
// drain already running, no stream in flight, and the endpoint reachable.
func (q *Queue) CanDrain(streaming, connected bool) bool {
	return len(q.chatIDs) > 0 && !q.draining && !streaming && connected
}

// BeginDrain pops the head chat ID and marks the queue busy until EndDrain.
// The second return is false when the queue is empty or a drain is running.
func (q *Queue) BeginDrain() (string, bool) {
	if len(q.chatIDs) == 0 || q.draining {
		return "", false
	}
	head := q.chatIDs[0]
	q.chatIDs = q.chatIDs[1:]
	q.draining = true
	return head, true
}

// EndDrain releases the queue for the next head.
func (q *Queue) EndDrain() {
	q.draining = false
}
