package spawn

// commandQueue is a plain FIFO. Validation happens at enqueue time in
// the spawner so a command in the queue is always executable.
type commandQueue struct {
	items []Command
}

func (q *commandQueue) enqueue(c Command) {
	q.items = append(q.items, c)
}

func (q *commandQueue) dequeue() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}

func (q *commandQueue) len() int {
	return len(q.items)
}
