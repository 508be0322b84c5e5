package queue

// Queue is a typed channel wrapper used to hand broadcast jobs from the
// bot handlers to the broadcaster worker. A non-zero size makes Put
// non-blocking until the buffer fills, so admin commands return quickly.
type Queue[T any] struct {
	ch chan T
}

func NewQueue[T any](size int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, size)}
}

func (q *Queue[T]) Put(x T) {
	q.ch <- x
}

func (q *Queue[T]) Take() T {
	return <-q.ch
}

func (q *Queue[T]) AsChan() chan T {
	return q.ch
}
