package termi

// queue is a FIFO of pending items. Items can be put back at the front
type queue[T any] struct {
	items []T
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		items: make([]T, 0, 32),
	}
}

func (q *queue[T]) len() int {
	return len(q.items)
}

func (q *queue[T]) push(item T) {
	q.items = append(q.items, item)
}

// pushFront puts item ahead of everything queued
func (q *queue[T]) pushFront(item T) {
	q.items = append(q.items, item)
	copy(q.items[1:], q.items)
	q.items[0] = item
}

// extend appends items, keeping their order
func (q *queue[T]) extend(items []T) {
	q.items = append(q.items, items...)
}

// prepend puts items ahead of everything queued, keeping their order
func (q *queue[T]) prepend(items []T) {
	if len(items) == 0 {
		return
	}
	n := len(q.items)
	q.items = append(q.items, items...)
	copy(q.items[len(items):], q.items[:n])
	copy(q.items, items)
}

func (q *queue[T]) pop() (T, bool) {
	var item T
	switch len(q.items) {
	case 0:
		return item, false
	case 1:
		item = q.items[0]
		q.items = q.items[:0]
	default:
		item = q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
	}
	return item, true
}

// anyMatch reports if fn returns true for a queued item
func (q *queue[T]) anyMatch(fn func(T) bool) bool {
	for _, item := range q.items {
		if fn(item) {
			return true
		}
	}
	return false
}
