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
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ErrPrecondition means an operation was attempted on a counter that
// cannot support it: count on an uninitialised (M==0) counter, or a k
// outside [1,32].
var ErrPrecondition = errors.New("kmkm: precondition violated")

// ErrCorruptRecord means a persisted counter record failed its magic or
// version check, or was truncated.
var ErrCorruptRecord = errors.New("kmkm: corrupt counter record")

// recordMagic identifies a kmkm counter record on disk.
var recordMagic = [8]byte{'k', 'm', 'k', 'm', 'c', 'n', 't', '1'}

// recordVersion is the on-disk format version.
const recordVersion uint8 = 1

var be = binary.BigEndian

// Counter accumulates a k-mer frequency spectrum over one or more
// sequences into a fixed-size count vector, optionally fronted by a
// counting Bloom filter.
type Counter struct {
	k         int
	canonical bool
	t         int
	m         uint64

	counts *CountVector[uint8]
	cbf    *CBF[uint8]
}

// NewCounter constructs an empty counter: k-mer size k, vector size m
// (should be a power of two), canonical folding, and t counting Bloom
// filter banks (0 disables the filter).
func NewCounter(k int, m uint64, canonical bool, t int) (*Counter, error) {
	if k < 1 || k > 32 {
		return nil, errors.Wrap(ErrPrecondition, "k out of [1,32]")
	}
	c := &Counter{
		k:         k,
		canonical: canonical,
		t:         t,
		m:         m,
		counts:    NewCountVector[uint8](m),
	}
	if t > 0 {
		c.cbf = NewCBF[uint8](t, m)
	}
	return c, nil
}

// K returns the k-mer size.
func (c *Counter) K() int { return c.k }

// Canonical reports whether codes are folded to their canonical form.
func (c *Counter) Canonical() bool { return c.canonical }

// NumBanks returns t, the number of counting Bloom filter banks (0 when
// disabled).
func (c *Counter) NumBanks() int { return c.t }

// Size returns M, the count vector length.
func (c *Counter) Size() uint64 { return c.m }

// Counts returns the underlying count vector.
func (c *Counter) Counts() *CountVector[uint8] { return c.counts }

// NNZ returns the number of non-zero cells in the count vector.
func (c *Counter) NNZ() uint64 { return c.counts.NNZ() }

// CollisionRate returns the count vector's collision rate.
func (c *Counter) CollisionRate() float64 { return c.counts.CollisionRate() }

// Consume drives the enumerator over seq, folding every emitted code
// through the optional counting Bloom filter and into the count vector.
// It fails with ErrPrecondition if the counter was constructed with M==0.
func (c *Counter) Consume(seq []byte) error {
	if c.m == 0 {
		return errors.Wrap(ErrPrecondition, "consume on an uninitialised counter (M=0)")
	}
	e := NewEnumerator(seq, c.k, c.canonical)
	for {
		code, ok := e.Next()
		if !ok {
			break
		}
		c.observe(code)
	}
	return nil
}

func (c *Counter) observe(code uint64) {
	h := MixHash(code)
	if c.t == 0 {
		c.counts.Increment(h)
		return
	}
	estimate := c.cbf.Count(h)
	c.counts.Set(h, estimate)
}

// ConsumeFrom pulls sequence records from src until exhausted, consuming
// each one, and returns the number of records consumed.
func (c *Counter) ConsumeFrom(src SequenceSource) (int, error) {
	n := 0
	for {
		seq, ok, err := src.NextRecord()
		if err != nil {
			return n, errors.Wrap(err, "reading sequence source")
		}
		if !ok {
			return n, nil
		}
		if err := c.Consume(seq); err != nil {
			return n, err
		}
		n++
	}
}

// Save persists the counter record to path. A trailing ".gz" suffix wraps
// the stream in gzip compression.
func (c *Counter) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating counter record")
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(bw)
		w = gz
	}

	if err := writeRecord(w, c); err != nil {
		return errors.Wrap(err, "writing counter record")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errors.Wrap(err, "closing gzip stream")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing counter record")
	}
	return nil
}

func writeRecord(w io.Writer, c *Counter) error {
	if err := binary.Write(w, be, recordMagic); err != nil {
		return err
	}
	if err := binary.Write(w, be, recordVersion); err != nil {
		return err
	}
	var canon uint8
	if c.canonical {
		canon = 1
	}
	header := []uint8{uint8(c.k), canon, uint8(c.t)}
	if err := binary.Write(w, be, header); err != nil {
		return err
	}
	if err := binary.Write(w, be, c.m); err != nil {
		return err
	}
	if _, err := w.Write(c.counts.Cells()); err != nil {
		return err
	}
	return nil
}

// LoadCounter restores a counter record previously written by Save.
// Transparent gzip decompression is applied when path ends ".gz". Returns
// ErrCorruptRecord on a magic/version mismatch or a truncated blob.
func LoadCounter(path string) (*Counter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening counter record")
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(ErrCorruptRecord, err.Error())
		}
		defer gz.Close()
		r = gz
	}

	return readRecord(r)
}

func readRecord(r io.Reader) (*Counter, error) {
	var magic [8]byte
	if err := binary.Read(r, be, &magic); err != nil {
		return nil, errors.Wrap(ErrCorruptRecord, "reading magic")
	}
	if magic != recordMagic {
		return nil, errors.Wrap(ErrCorruptRecord, "bad magic")
	}

	var version uint8
	if err := binary.Read(r, be, &version); err != nil {
		return nil, errors.Wrap(ErrCorruptRecord, "reading version")
	}
	if version != recordVersion {
		return nil, errors.Wrap(ErrCorruptRecord, "unsupported version")
	}

	header := make([]uint8, 3)
	if err := binary.Read(r, be, header); err != nil {
		return nil, errors.Wrap(ErrCorruptRecord, "reading header")
	}
	k := int(header[0])
	canonical := header[1] == 1
	t := int(header[2])

	var m uint64
	if err := binary.Read(r, be, &m); err != nil {
		return nil, errors.Wrap(ErrCorruptRecord, "reading vector size")
	}

	cells := make([]uint8, m)
	if _, err := io.ReadFull(r, cells); err != nil {
		return nil, errors.Wrap(ErrCorruptRecord, "reading count vector")
	}

	c := &Counter{
		k:         k,
		canonical: canonical,
		t:         t,
		m:         m,
		counts:    countVectorFromCells(cells),
	}
	if t > 0 {
		c.cbf = NewCBF[uint8](t, m)
	}
	return c, nil
}

func countVectorFromCells(cells []uint8) *CountVector[uint8] {
	v := NewCountVector[uint8](uint64(len(cells)))
	copy(v.Cells(), cells)
	return v
}
