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

import "errors"

// ErrKOverflow means k is outside [1,32].
var ErrKOverflow = errors.New("kmkm: k (1-32) overflow")

// ErrInvalidK means k < 1.
var ErrInvalidK = errors.New("kmkm: invalid k-mer size")

// bit2base maps a 2-bit code to its base.
var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// mask64 returns the low 2k bits set, for 1<=k<=32.
func mask64(k int) uint64 {
	if k == 32 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(2*k)) - 1
}

// Reverse returns the code with its base order reversed (not complemented).
func Reverse(code uint64, k int) uint64 {
	var c uint64
	for i := 0; i < k; i++ {
		c <<= 2
		c |= code & 3
		code >>= 2
	}
	return c
}

// Complement returns the complement of code (each 2-bit base XORed with 3),
// without reversing base order.
func Complement(code uint64, k int) uint64 {
	return code ^ mask64(k)
}

// RevComp returns the reverse-complement of a k-mer code. It is its own
// inverse: RevComp(RevComp(c,k),k) == c.
func RevComp(code uint64, k int) uint64 {
	var c uint64
	for i := 0; i < k; i++ {
		c <<= 2
		c |= (code & 3) ^ 3
		code >>= 2
	}
	return c
}

// Canonical returns the lexicographically smaller of code and its
// reverse complement.
func Canonical(code uint64, k int) uint64 {
	rc := RevComp(code, k)
	if rc < code {
		return rc
	}
	return code
}

// Decode converts a k-mer code back to its nucleotide bytes.
func Decode(code uint64, k int) []byte {
	kmer := make([]byte, k)
	for i := 0; i < k; i++ {
		kmer[k-1-i] = bit2base[code&3]
		code >>= 2
	}
	return kmer
}

// KmerCode pairs a 2-bit-packed k-mer with its length.
type KmerCode struct {
	Code uint64
	K    int
}

// Equal reports whether two KmerCodes denote the same k-mer.
func (kc KmerCode) Equal(other KmerCode) bool {
	return kc.K == other.K && kc.Code == other.Code
}

// Rev returns the KmerCode with reversed (not complemented) base order.
func (kc KmerCode) Rev() KmerCode {
	return KmerCode{Reverse(kc.Code, kc.K), kc.K}
}

// Comp returns the complemented (not reversed) KmerCode.
func (kc KmerCode) Comp() KmerCode {
	return KmerCode{Complement(kc.Code, kc.K), kc.K}
}

// RevComp returns the reverse-complement KmerCode.
func (kc KmerCode) RevComp() KmerCode {
	return KmerCode{RevComp(kc.Code, kc.K), kc.K}
}

// Canonical returns the canonical form of the KmerCode.
func (kc KmerCode) Canonical() KmerCode {
	return KmerCode{Canonical(kc.Code, kc.K), kc.K}
}

// Bytes decodes the KmerCode back to nucleotide bytes.
func (kc KmerCode) Bytes() []byte {
	return Decode(kc.Code, kc.K)
}

// String returns the k-mer as a string.
func (kc KmerCode) String() string {
	return string(kc.Bytes())
}
