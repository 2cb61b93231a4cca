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

// Cell is the constraint on count vector cell types: unsigned integers
// wide enough to hold a saturating abundance estimate. uint8 is the default
// (one byte per cell on disk); uint16/uint32 trade memory for headroom
// before saturation.
type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// maxOf returns the maximum representable value of E.
func maxOf[E Cell]() E {
	var zero E
	return zero - 1
}

// CountVector is a fixed-length, power-of-two-sized vector of saturating
// counters, indexed by a hashed k-mer code modulo its length.
type CountVector[E Cell] struct {
	cells []E
}

// NewCountVector allocates a zeroed vector of size m. m must be a power of
// two (or zero, the "uninitialised" sentinel size used before a Counter's
// first construction completes).
func NewCountVector[E Cell](m uint64) *CountVector[E] {
	return &CountVector[E]{cells: make([]E, m)}
}

// Size returns M, the number of cells.
func (v *CountVector[E]) Size() uint64 {
	return uint64(len(v.cells))
}

// Increment saturating-adds one to the cell at idx mod len(cells).
func (v *CountVector[E]) Increment(idx uint64) E {
	i := idx % uint64(len(v.cells))
	if v.cells[i] != maxOf[E]() {
		v.cells[i]++
	}
	return v.cells[i]
}

// Set writes val into the cell at idx mod len(cells), clamped to the
// representable maximum. Used by the counting Bloom filter to promote a
// count-min estimate into the main vector.
func (v *CountVector[E]) Set(idx uint64, val uint64) {
	i := idx % uint64(len(v.cells))
	m := maxOf[E]()
	if val > uint64(m) {
		v.cells[i] = m
		return
	}
	v.cells[i] = E(val)
}

// Get returns the cell at idx mod len(cells).
func (v *CountVector[E]) Get(idx uint64) E {
	return v.cells[idx%uint64(len(v.cells))]
}

// NNZ returns the number of non-zero cells.
func (v *CountVector[E]) NNZ() uint64 {
	var n uint64
	for _, c := range v.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

// CollisionRate returns nnz()/M, or -1 when the vector is uninitialised
// (M == 0).
func (v *CountVector[E]) CollisionRate() float64 {
	if len(v.cells) == 0 {
		return -1
	}
	return float64(v.NNZ()) / float64(len(v.cells))
}

// Cells exposes the backing slice for iteration and persistence. Callers
// must not resize it.
func (v *CountVector[E]) Cells() []E {
	return v.cells
}
