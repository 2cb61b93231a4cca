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

// Enumerator walks a DNA byte string emitting 2-bit-packed k-mer codes,
// skipping ambiguous (non-ACGT) bases. It is a finite, non-restartable
// stream of codes unless explicitly Reset.
type Enumerator struct {
	seq       []byte
	k         int
	canonical bool
	mask      uint64

	pos      int
	register uint64
}

// NewEnumerator constructs an Enumerator over seq for k-mers of length k.
// k outside [1,32] is a precondition violation and panics.
func NewEnumerator(seq []byte, k int, canonical bool) *Enumerator {
	if k < 1 || k > 32 {
		panic(ErrKOverflow)
	}
	return &Enumerator{
		seq:       seq,
		k:         k,
		canonical: canonical,
		mask:      mask64(k),
	}
}

// Reset rewinds the enumerator to the start of the sequence.
func (e *Enumerator) Reset() {
	e.pos = 0
	e.register = 0
}

// Size returns the maximum number of k-mers the enumerator could emit:
// len(seq)-k+1, clamped to 0. Fewer may be emitted if ambiguous bases force
// restarts.
func (e *Enumerator) Size() int {
	n := len(e.seq) - e.k + 1
	if n < 0 {
		return 0
	}
	return n
}

// Finished reports whether the enumerator has no more codes to emit.
func (e *Enumerator) Finished() bool {
	return len(e.seq) < e.k || e.pos >= len(e.seq)
}

// Next returns the next k-mer code, or ok=false when the sequence is
// exhausted. The shift register persists across calls, but the skip
// counter does not: it starts at 0 on entry to Next and, on hitting a byte
// outside {A,C,G,T} (after uppercasing via the 0x5F mask), is set to k,
// forcing k further advances (consuming k more bytes into the register)
// before that call can return, so the ambiguous byte is fully shifted out
// of the k-wide window by the time a code is emitted.
func (e *Enumerator) Next() (code uint64, ok bool) {
	skip := 0
	for {
		if e.Finished() {
			return 0, false
		}
		if skip > 0 {
			skip--
		}
		b := e.seq[e.pos] & 0x5F // force uppercase
		e.pos++
		var n uint64
		switch b {
		case 'A':
			n = 0
		case 'C':
			n = 1
		case 'G':
			n = 2
		case 'T':
			n = 3
		default:
			skip = e.k
		}
		e.register = ((e.register << 2) | n) & e.mask
		if skip == 0 && e.pos >= e.k {
			break
		}
	}
	code = e.register
	if e.canonical {
		code = Canonical(code, e.k)
	}
	return code, true
}
