package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	var got []int
	n := q.Drain(func(v int) { got = append(got, v) })

	assert.Equal(t, 10, n)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain(func(int) {}))
}

func TestPushDuringDrainWaitsForNextDrain(t *testing.T) {
	q := New[string](2)
	q.Push("a")

	var first []string
	q.Drain(func(s string) {
		first = append(first, s)
		q.Push(s + "!")
	})
	assert.Equal(t, []string{"a"}, first)

	var second []string
	q.Drain(func(s string) { second = append(second, s) })
	assert.Equal(t, []string{"a!"}, second)
}

func TestConcurrentProducers(t *testing.T) {
	q := New[int](0)
	const producers, perProducer = 8, 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}

	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		total += q.Drain(func(int) {})
	}
	total += q.Drain(func(int) {})

	assert.Equal(t, producers*perProducer, total)
}

func TestPop(t *testing.T) {
	q := New[int](2)
	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(1)
	q.Push(2)
	q.Push(3)
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	var rest []int
	q.Drain(func(v int) { rest = append(rest, v) })
	assert.Equal(t, []int{2, 3}, rest)
}
