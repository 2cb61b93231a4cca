// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package kmkm

import "container/heap"

// ordered is the subset of cmp.Ordered kmkm needs.
type ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// maxHeapSlice is a container/heap.Interface over a plain slice, ordered so
// that the root is the maximum element.
type maxHeapSlice[T ordered] []T

func (h maxHeapSlice[T]) Len() int            { return len(h) }
func (h maxHeapSlice[T]) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHeapSlice[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeapSlice[T]) Push(x interface{}) { *h = append(*h, x.(T)) }
func (h *maxHeapSlice[T]) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// BoundedMaxHeap retains at most maxSize values from a stream, bounding
// them from above: once full, a new value is kept only if it is smaller
// than the current maximum, which is evicted to make room. Finalize drains
// the heap in ascending order.
type BoundedMaxHeap[T ordered] struct {
	h       maxHeapSlice[T]
	maxSize int
}

// NewBoundedMaxHeap constructs an empty heap bounded to maxSize elements.
func NewBoundedMaxHeap[T ordered](maxSize int) *BoundedMaxHeap[T] {
	return &BoundedMaxHeap[T]{maxSize: maxSize}
}

// Push inserts v if there is room, or if v is smaller than the current
// maximum (which is evicted). Returns whether v was kept.
func (b *BoundedMaxHeap[T]) Push(v T) bool {
	if len(b.h) < b.maxSize {
		heap.Push(&b.h, v)
		return true
	}
	if b.maxSize == 0 {
		return false
	}
	if v < b.h[0] {
		heap.Pop(&b.h)
		heap.Push(&b.h, v)
		return true
	}
	return false
}

// Top returns the current maximum of the retained elements.
func (b *BoundedMaxHeap[T]) Top() T {
	return b.h[0]
}

// Len returns the number of retained elements.
func (b *BoundedMaxHeap[T]) Len() int {
	return len(b.h)
}

// Full reports whether the heap holds maxSize elements.
func (b *BoundedMaxHeap[T]) Full() bool {
	return len(b.h) == b.maxSize
}

// Finalize drains the heap, returning its contents in ascending order, and
// leaves it empty.
func (b *BoundedMaxHeap[T]) Finalize() []T {
	n := len(b.h)
	result := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		result[i] = heap.Pop(&b.h).(T)
	}
	return result
}
