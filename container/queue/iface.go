package queue

// IQueue is a FIFO of values of type T.
// Enqueue reports whether v was accepted; blocking implementations always
// return true.
type IQueue[T any] interface {
	Enqueue(v T) bool
	Dequeue() T
	Len() int
	Cap() int
}
