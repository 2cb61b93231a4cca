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
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// CBF is a counting Bloom filter: t banks of M/2 saturating counters,
// giving a count-min estimate of a k-mer code's abundance that is then
// promoted into the main count vector. t == 0 leaves banks empty and
// Count is never called (the counter writes straight to its CountVector).
type CBF[E Cell] struct {
	banks []*CountVector[E]
	half  uint64
	idx   []uint64 // per-Count scratch, one slot per bank
}

// NewCBF allocates t banks of m/2 counters each. m must be the same M as
// the owning Counter's main vector.
func NewCBF[E Cell](t int, m uint64) *CBF[E] {
	half := m / 2
	banks := make([]*CountVector[E], t)
	for b := range banks {
		banks[b] = NewCountVector[E](half)
	}
	return &CBF[E]{banks: banks, half: half, idx: make([]uint64, t)}
}

// NumBanks returns t.
func (c *CBF[E]) NumBanks() int {
	return len(c.banks)
}

// bankHash is the per-bank seeded hash, distinguishing banks by mixing the
// bank index into the digest rather than the primary splitmix path (which
// is reserved for indexing the main vector).
func bankHash(h uint64, bank int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(bank))
	return xxhash.Sum64(buf[:])
}

// Count runs the count-min update from a hashed code h (already passed
// through MixHash) and returns the resulting count-min estimate: the prior
// minimum across banks, plus one. Every bank's counter is saturating-
// incremented regardless of which bank held the minimum.
func (c *CBF[E]) Count(h uint64) uint64 {
	if len(c.banks) == 0 {
		return 0
	}
	prior := ^uint64(0)
	for b := range c.banks {
		i := bankHash(h, b) % c.half
		c.idx[b] = i
		if v := uint64(c.banks[b].Get(i)); v < prior {
			prior = v
		}
	}
	for b := range c.banks {
		c.banks[b].Increment(c.idx[b])
	}
	return prior + 1
}
