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

import (
	"reflect"
	"testing"
)

// TestBoundedMaxHeapKeepsSmallest: pushing [5,1,4,2,3] into a heap
// bounded to 3 elements finalizes to [1,2,3].
func TestBoundedMaxHeapKeepsSmallest(t *testing.T) {
	h := NewBoundedMaxHeap[int](3)
	for _, v := range []int{5, 1, 4, 2, 3} {
		h.Push(v)
	}
	got := h.Finalize()
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Finalize() = %v, want %v", got, want)
	}
}

func TestBoundedMaxHeapFullAndLen(t *testing.T) {
	h := NewBoundedMaxHeap[int](2)
	if h.Full() {
		t.Fatal("empty heap reported full")
	}
	h.Push(10)
	h.Push(20)
	if !h.Full() {
		t.Fatal("expected heap to be full after 2 pushes")
	}
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
}

func TestBoundedMaxHeapDiscardsLargerThanMax(t *testing.T) {
	h := NewBoundedMaxHeap[int](2)
	h.Push(1)
	h.Push(2)
	if kept := h.Push(5); kept {
		t.Fatal("expected 5 to be discarded (not smaller than current max 2)")
	}
	if got := h.Finalize(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Finalize() = %v, want [1 2]", got)
	}
}

func TestBoundedMaxHeapTop(t *testing.T) {
	h := NewBoundedMaxHeap[int](3)
	h.Push(3)
	h.Push(1)
	h.Push(2)
	if got := h.Top(); got != 3 {
		t.Fatalf("Top() = %d, want 3", got)
	}
}

func TestBoundedMaxHeapZeroCapacity(t *testing.T) {
	h := NewBoundedMaxHeap[int](0)
	if h.Push(1) {
		t.Fatal("expected push into a zero-capacity heap to be discarded")
	}
	if got := h.Finalize(); len(got) != 0 {
		t.Fatalf("Finalize() = %v, want empty", got)
	}
}

func TestBoundedMaxHeapFinalizeEmptiesHeap(t *testing.T) {
	h := NewBoundedMaxHeap[int](3)
	h.Push(1)
	h.Push(2)
	h.Finalize()
	if h.Len() != 0 {
		t.Fatalf("Len() after Finalize() = %d, want 0", h.Len())
	}
}
